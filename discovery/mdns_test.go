package discovery

import (
	"net"
	"testing"
)

func TestServiceRecord(t *testing.T) {
	ips := []net.IP{net.IPv4(192, 168, 1, 20)}
	svc, err := service("studio", 8080, ips, []string{"cover-photo"})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if svc.Service != ServiceType || svc.Port != 8080 || svc.Instance != "studio" {
		t.Fatalf("unexpected service %+v", svc)
	}
	if svc.Domain != "local." {
		t.Fatalf("expected default domain, got %q", svc.Domain)
	}
	if len(svc.TXT) != 1 || svc.TXT[0] != "cover-photo" {
		t.Fatalf("unexpected TXT %v", svc.TXT)
	}
}

func TestServiceRequiresPort(t *testing.T) {
	if _, err := service("studio", 0, []net.IP{net.IPv4(127, 0, 0, 1)}, nil); err == nil {
		t.Fatal("expected an error for port 0")
	}
}

func TestFirstIPv4(t *testing.T) {
	if ip := firstIPv4(); ip.To4() == nil {
		t.Fatalf("expected an IPv4 address, got %v", ip)
	}
}
