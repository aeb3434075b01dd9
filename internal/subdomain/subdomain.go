// Package subdomain validates domain input and normalizes names pulled
// from certificate records.
package subdomain

import (
	"regexp"
	"sort"
	"strings"

	"github.com/certsift/certsift/internal/engine"
)

// domainPattern accepts one or more dot-separated labels of alphanumerics
// and interior hyphens, ending in an alphabetic TLD of at least two
// characters. Deliberately restrictive: no schemes, paths, ports, single
// labels, or internationalized names.
var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsValid reports whether candidate is a syntactically plausible domain.
// Pure function; called before any network activity.
func IsValid(candidate string) bool {
	return domainPattern.MatchString(candidate)
}

// Clean trims whitespace and strips one leading "*." wildcard marker and
// one leading "www." prefix, in that order. Idempotent on clean names.
func Clean(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "*.")
	name = strings.TrimPrefix(name, "www.")
	return name
}

// DefaultOutputPath derives the output filename the way the CLI documents:
// the domain with a trailing ".com" removed, plus "-subdomains.txt".
func DefaultOutputPath(domain string) string {
	return strings.TrimSuffix(domain, ".com") + "-subdomains.txt"
}

// Normalizer implements engine.RecordNormalizer.
type Normalizer struct{}

// Normalize walks the records, extracting common_name and every
// newline-separated entry of name_value, cleaning each candidate and
// collecting the unique non-empty results. Returns a sorted slice.
// A null common_name decodes to "" and is skipped without affecting the
// record's name_value.
func (Normalizer) Normalize(records []engine.CertificateRecord) []string {
	seen := make(map[string]struct{})

	for _, rec := range records {
		insert(seen, rec.CommonName)
		// name_value carries multiple SANs separated by newlines.
		for _, name := range strings.Split(rec.NameValue, "\n") {
			insert(seen, name)
		}
	}

	subdomains := make([]string, 0, len(seen))
	for name := range seen {
		subdomains = append(subdomains, name)
	}
	sort.Strings(subdomains)
	return subdomains
}

func insert(seen map[string]struct{}, raw string) {
	name := Clean(raw)
	if name == "" {
		return
	}
	seen[name] = struct{}{}
}
