// Package engine orchestrates the certsift pipeline.
package engine

import (
	"context"
	"time"
)

// CertificateRecord is one entry from a Certificate Transparency log query.
// name_value may hold several Subject Alternative Names separated by newlines;
// common_name may be null in the upstream JSON, which decodes to "".
type CertificateRecord struct {
	CommonName string `json:"common_name"`
	NameValue  string `json:"name_value"`
}

// FetchStatus tags the outcome of a log query so callers can tell
// "genuinely no certificates" apart from "could not reach the service".
type FetchStatus int

const (
	FetchOK FetchStatus = iota
	FetchEmpty
	FetchTimeout
	FetchTransportError
)

// String returns the status name used in JSON output and log lines.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchEmpty:
		return "empty"
	case FetchTimeout:
		return "timeout"
	case FetchTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (s FetchStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FetchResult is the tagged result of one log query. Records is non-empty
// only when Status is FetchOK. Err carries the underlying cause for the
// timeout and transport statuses; it is diagnostic, not fatal.
type FetchResult struct {
	Status  FetchStatus
	Records []CertificateRecord
	Err     error
}

// Resolution holds the addresses a discovered subdomain resolved to.
type Resolution struct {
	Host string   `json:"host"`
	IPs  []string `json:"ips"`
}

// Result is the top-level output of a certsift run.
type Result struct {
	Domain       string       `json:"domain"`
	StartedAt    time.Time    `json:"started_at"`
	CompletedAt  time.Time    `json:"completed_at"`
	DurationSecs float64      `json:"duration_secs"`
	FetchStatus  FetchStatus  `json:"fetch_status"`
	RecordCount  int          `json:"record_count"`
	Subdomains   []string     `json:"subdomains"`
	Resolutions  []Resolution `json:"resolutions,omitempty"`
	OutputPath   string       `json:"output_path,omitempty"`
}

// RecordFetcher queries a Certificate Transparency log for a domain.
type RecordFetcher interface {
	Fetch(ctx context.Context, domain string) FetchResult
}

// RecordNormalizer extracts cleaned, deduplicated subdomain names from
// certificate records. The returned slice is sorted.
type RecordNormalizer interface {
	Normalize(records []CertificateRecord) []string
}

// HostResolver verifies which hosts resolve in DNS. Optional stage.
type HostResolver interface {
	Resolve(ctx context.Context, hosts []string) []Resolution
}

// SubdomainWriter persists the final subdomain list.
type SubdomainWriter interface {
	Write(path string, subdomains []string) error
}

// Reporter receives human-readable pipeline status. Implementations decide
// presentation (plain vs. styled); the engine never prints directly.
type Reporter interface {
	Stage(num, total int, msg string)
	Detail(msg string)
	Warn(msg string)
}
