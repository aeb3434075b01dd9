package engine

import (
	"context"
	"fmt"
	"time"
)

// Config holds the runtime configuration for a certsift run.
type Config struct {
	Domain     string
	OutputPath string
	Resolve    bool
}

// Stages holds the injectable stage implementations.
type Stages struct {
	Fetcher    RecordFetcher
	Normalizer RecordNormalizer
	Resolver   HostResolver // used only when Config.Resolve is set
	Writer     SubdomainWriter
}

// Run executes the pipeline: fetch, normalize, optionally resolve, write.
// The stages run strictly in sequence; invalid input is rejected by the
// caller before Run is entered, so the first action here is the single
// network call.
//
// A nil error with an empty Subdomains slice is the no-results outcome:
// the upstream either had nothing for the domain or could not be reached
// (Result.FetchStatus tells which). No file is written in that case.
// Only write failures are returned as errors.
func Run(ctx context.Context, cfg Config, stages Stages, reporter Reporter) (*Result, error) {
	result := &Result{
		Domain:    cfg.Domain,
		StartedAt: time.Now(),
	}

	total := 3
	if cfg.Resolve {
		total = 4
	}

	// Stage 1: query the transparency log.
	reporter.Stage(1, total, fmt.Sprintf("Querying crt.sh for %s...", cfg.Domain))
	fetch := stages.Fetcher.Fetch(ctx, cfg.Domain)
	result.FetchStatus = fetch.Status

	switch fetch.Status {
	case FetchOK:
		result.RecordCount = len(fetch.Records)
		reporter.Detail(fmt.Sprintf("%d certificate records", len(fetch.Records)))
	case FetchTimeout:
		reporter.Warn(fmt.Sprintf("request timed out: %s", fetch.Err))
		return finish(result), nil
	case FetchTransportError:
		reporter.Warn(fmt.Sprintf("request failed: %s", fetch.Err))
		return finish(result), nil
	default: // FetchEmpty
		return finish(result), nil
	}

	// Stage 2: extract and clean subdomain names.
	reporter.Stage(2, total, "Extracting subdomains...")
	subdomains := stages.Normalizer.Normalize(fetch.Records)
	result.Subdomains = subdomains
	reporter.Detail(fmt.Sprintf("%d unique subdomains", len(subdomains)))

	if len(subdomains) == 0 {
		return finish(result), nil
	}

	// Stage 3 (optional): verify which hosts resolve. Diagnostic only;
	// the written file is unaffected.
	stage := 3
	if cfg.Resolve {
		reporter.Stage(stage, total, fmt.Sprintf("Resolving %d hosts...", len(subdomains)))
		result.Resolutions = stages.Resolver.Resolve(ctx, subdomains)
		reporter.Detail(fmt.Sprintf("%d of %d hosts resolved", len(result.Resolutions), len(subdomains)))
		stage++
	}

	// Final stage: persist the sorted list.
	reporter.Stage(stage, total, fmt.Sprintf("Writing %s...", cfg.OutputPath))
	if err := stages.Writer.Write(cfg.OutputPath, subdomains); err != nil {
		return nil, fmt.Errorf("writing %s: %w", cfg.OutputPath, err)
	}
	result.OutputPath = cfg.OutputPath

	return finish(result), nil
}

func finish(r *Result) *Result {
	r.CompletedAt = time.Now()
	r.DurationSecs = r.CompletedAt.Sub(r.StartedAt).Seconds()
	return r
}
