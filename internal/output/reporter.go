// Package output handles all certsift CLI presentation: status reporting,
// the results file, and structured JSON.
package output

import (
	"fmt"
	"io"

	"github.com/certsift/certsift/internal/engine"
	"github.com/charmbracelet/lipgloss"
)

// NewReporter selects a reporter implementation at startup: styled unless
// colors are disabled, silenced entirely when silent is set.
func NewReporter(w io.Writer, verbose, silent, noColor bool) engine.Reporter {
	if noColor {
		return &PlainReporter{w: w, verbose: verbose, silent: silent}
	}
	return &StyledReporter{w: w, verbose: verbose, silent: silent}
}

// PlainReporter writes undecorated status lines.
type PlainReporter struct {
	w       io.Writer
	verbose bool
	silent  bool
}

// Stage prints a stage header like "[1/3] Querying crt.sh...".
func (p *PlainReporter) Stage(num, total int, msg string) {
	if p.silent {
		return
	}
	fmt.Fprintf(p.w, "[%d/%d] %s\n", num, total, msg)
}

// Detail prints verbose detail (only in verbose mode).
func (p *PlainReporter) Detail(msg string) {
	if !p.verbose || p.silent {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", msg)
}

// Warn prints a warning line.
func (p *PlainReporter) Warn(msg string) {
	if p.silent {
		return
	}
	fmt.Fprintf(p.w, "  ! %s\n", msg)
}

var (
	stageStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	bannerStyle = lipgloss.NewStyle().Bold(true)
)

// StyledReporter decorates status lines with lipgloss styles.
type StyledReporter struct {
	w       io.Writer
	verbose bool
	silent  bool
}

func (s *StyledReporter) Stage(num, total int, msg string) {
	if s.silent {
		return
	}
	fmt.Fprintf(s.w, "%s %s\n", stageStyle.Render(fmt.Sprintf("[%d/%d]", num, total)), msg)
}

func (s *StyledReporter) Detail(msg string) {
	if !s.verbose || s.silent {
		return
	}
	fmt.Fprintf(s.w, "  %s\n", detailStyle.Render(msg))
}

func (s *StyledReporter) Warn(msg string) {
	if s.silent {
		return
	}
	fmt.Fprintf(s.w, "  %s %s\n", warnStyle.Render("!"), msg)
}

// WriteBanner prints the tool banner with version.
func WriteBanner(w io.Writer, version string, noColor bool) {
	if noColor {
		fmt.Fprintf(w, "certsift %s\n\n", version)
		return
	}
	fmt.Fprintf(w, "%s\n\n", bannerStyle.Render("certsift "+version))
}
