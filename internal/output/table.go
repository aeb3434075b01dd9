package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/certsift/certsift/internal/engine"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WriteResolutions renders the DNS verification results as a terminal
// table, one row per host that resolved.
func WriteResolutions(w io.Writer, resolutions []engine.Resolution, noColor bool) {
	if len(resolutions) == 0 {
		fmt.Fprintln(w, "\nNo hosts resolved.")
		return
	}

	var rows [][]string
	for _, r := range resolutions {
		rows = append(rows, []string{r.Host, strings.Join(r.IPs, ", ")})
	}

	fmt.Fprintln(w)

	if noColor {
		writeSimpleTable(w, rows)
		return
	}

	t := table.New().
		Headers("Host", "A Records").
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		})

	for _, row := range rows {
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func writeSimpleTable(w io.Writer, rows [][]string) {
	headers := []string{"Host", "A Records"}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(w)

	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			fmt.Fprintf(w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}
