package resolve

import (
	"context"
	"net"
	"testing"

	"github.com/miekg/dns"
)

// startStubDNS runs a local DNS server that answers A queries for names
// present in the answers map and NXDOMAIN for everything else.
func startStubDNS(t *testing.T, answers map[string]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)

		name := req.Question[0].Name
		ip, ok := answers[name]
		if !ok {
			m.Rcode = dns.RcodeNameError
			w.WriteMsg(m)
			return
		}

		m.Answer = append(m.Answer, &dns.A{
			Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60},
			A:   net.ParseIP(ip),
		})
		w.WriteMsg(m)
	})

	srv := &dns.Server{PacketConn: pc, Handler: handler}
	go srv.ActivateAndServe()
	t.Cleanup(func() { srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestResolve_ReturnsOnlyLiveHosts(t *testing.T) {
	addr := startStubDNS(t, map[string]string{
		"api.example.com.":  "1.2.3.4",
		"mail.example.com.": "5.6.7.8",
	})

	r := &Resolver{Server: addr}
	resolutions := r.Resolve(context.Background(), []string{
		"api.example.com",
		"gone.example.com",
		"mail.example.com",
	})

	if len(resolutions) != 2 {
		t.Fatalf("resolutions = %d, want 2: %v", len(resolutions), resolutions)
	}
	if resolutions[0].Host != "api.example.com" || resolutions[0].IPs[0] != "1.2.3.4" {
		t.Errorf("unexpected first resolution: %+v", resolutions[0])
	}
	if resolutions[1].Host != "mail.example.com" || resolutions[1].IPs[0] != "5.6.7.8" {
		t.Errorf("unexpected second resolution: %+v", resolutions[1])
	}
}

func TestResolve_CancelledContextStopsEarly(t *testing.T) {
	addr := startStubDNS(t, map[string]string{"api.example.com.": "1.2.3.4"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Resolver{Server: addr}
	resolutions := r.Resolve(ctx, []string{"api.example.com", "mail.example.com"})
	if len(resolutions) != 0 {
		t.Errorf("expected no resolutions after cancellation, got %v", resolutions)
	}
}

func TestResolve_NoHosts(t *testing.T) {
	addr := startStubDNS(t, nil)

	r := &Resolver{Server: addr}
	if got := r.Resolve(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
