package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/certsift/certsift/internal/ctlog"
	"github.com/certsift/certsift/internal/engine"
	"github.com/certsift/certsift/internal/output"
	"github.com/certsift/certsift/internal/resolve"
	"github.com/certsift/certsift/internal/subdomain"
	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	var (
		outputPath string
		timeout    time.Duration
		jsonOutput bool
		verbose    bool
		silent     bool
		noColor    bool
		doResolve  bool
	)

	rootCmd := &cobra.Command{
		Use:   "certsift <domain>",
		Short: "Sift subdomains out of Certificate Transparency logs",
		Long:  "Queries crt.sh for a domain, extracts subdomain names from certificate records, deduplicates them, and writes the sorted list to a text file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := strings.ToLower(strings.TrimSpace(args[0]))

			// Respect NO_COLOR env var.
			if _, ok := os.LookupEnv("NO_COLOR"); ok {
				noColor = true
			}

			// Validation happens before anything touches the network.
			// Status conditions are reported as messages, not exit codes.
			if !subdomain.IsValid(domain) {
				fmt.Fprintf(os.Stderr, "Invalid domain: %q\n", domain)
				return nil
			}

			if outputPath == "" {
				outputPath = subdomain.DefaultOutputPath(domain)
			}

			cfg := engine.Config{
				Domain:     domain,
				OutputPath: outputPath,
				Resolve:    doResolve,
			}

			// Set up context with signal handling for clean Ctrl+C.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			go func() {
				<-sigCh
				fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
				cancel()
			}()

			stages := engine.Stages{
				Fetcher:    &ctlog.Client{Timeout: timeout},
				Normalizer: subdomain.Normalizer{},
				Resolver:   &resolve.Resolver{},
				Writer:     output.FileWriter{},
			}

			showProgress := !jsonOutput && !silent
			reporter := output.NewReporter(os.Stderr, verbose, !showProgress, noColor)

			if showProgress {
				output.WriteBanner(os.Stderr, version, noColor)
			}

			result, err := engine.Run(ctx, cfg, stages, reporter)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.WriteJSON(os.Stdout, result)
			}

			if len(result.Subdomains) == 0 {
				fmt.Fprintf(os.Stdout, "No results found for %s\n", domain)
				return nil
			}

			if doResolve && showProgress {
				output.WriteResolutions(os.Stdout, result.Resolutions, noColor)
			}

			fmt.Fprintf(os.Stdout, "Wrote %d subdomains to %s\n", len(result.Subdomains), result.OutputPath)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: {domain}-subdomains.txt)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Upper bound for the crt.sh request")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output structured JSON to stdout")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose per-stage detail")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "Result line only, no progress")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colors")
	rootCmd.Flags().BoolVar(&doResolve, "resolve", false, "Verify discovered subdomains against DNS")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("certsift {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
