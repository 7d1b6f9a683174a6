// Package discovery advertises the editor on the local network over mDNS.
package discovery

import (
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_coverphoto._tcp"

// Advertise announces the editor listening on port. The caller shuts the
// returned server down on exit.
func Advertise(port int, info []string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	svc, err := service(host, port, nil, info)
	if err != nil {
		// The hostname may not resolve locally; fall back to the first
		// usable interface address.
		svc, err = service(host, port, []net.IP{firstIPv4()}, info)
		if err != nil {
			return nil, err
		}
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

func service(instance string, port int, ips []net.IP, info []string) (*mdns.MDNSService, error) {
	svc, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, ips, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return svc, nil
}

// firstIPv4 returns the first IPv4 address of an interface that is up and
// not a loopback, or 127.0.0.1.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
