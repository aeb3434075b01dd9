// Package resolve verifies discovered subdomains against DNS.
package resolve

import (
	"context"
	"net"
	"time"

	"github.com/certsift/certsift/internal/engine"
	"github.com/miekg/dns"
)

const (
	queryTimeout   = 5 * time.Second
	fallbackServer = "8.8.8.8:53"
	resolvConfPath = "/etc/resolv.conf"
	defaultDNSPort = "53"
)

// Resolver implements engine.HostResolver with one A query per host,
// issued strictly in sequence. Resolution is a diagnostic pass over the
// final list; failures are silent skips, never errors.
type Resolver struct {
	Server string // "host:port" override; defaults to the system resolver
}

// Resolve queries each host in turn and returns entries for those that
// answered with at least one A record. Stops early if ctx is cancelled.
func (r *Resolver) Resolve(ctx context.Context, hosts []string) []engine.Resolution {
	server := r.Server
	if server == "" {
		server = systemResolver()
	}

	client := &dns.Client{Timeout: queryTimeout}

	var resolutions []engine.Resolution
	for _, host := range hosts {
		select {
		case <-ctx.Done():
			return resolutions
		default:
		}

		ips := lookupA(ctx, client, server, host)
		if len(ips) == 0 {
			continue
		}
		resolutions = append(resolutions, engine.Resolution{Host: host, IPs: ips})
	}

	return resolutions
}

func lookupA(ctx context.Context, client *dns.Client, server, host string) []string {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
	msg.RecursionDesired = true

	in, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil || in == nil || in.Rcode != dns.RcodeSuccess {
		return nil
	}

	var ips []string
	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return ips
}

// systemResolver picks the first nameserver from resolv.conf, falling
// back to a public resolver when the file is unreadable.
func systemResolver() string {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil || len(conf.Servers) == 0 {
		return fallbackServer
	}
	port := conf.Port
	if port == "" {
		port = defaultDNSPort
	}
	return net.JoinHostPort(conf.Servers[0], port)
}
