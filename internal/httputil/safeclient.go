package httputil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// maxRedirects bounds redirect chains for both client flavors.
const maxRedirects = 10

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// NewClient creates an HTTP client for fetching remote references.
// A non-positive timeout means 30 seconds.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// NewSafeClient creates an HTTP client that blocks requests to
// private/loopback/link-local IPs. The HTTP and MCP servers use it so that
// $refs in submitted documents cannot be used to reach internal hosts.
func NewSafeClient(timeout time.Duration) *http.Client {
	client := NewClient(timeout)
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, err
			}
			if len(ips) == 0 {
				return nil, fmt.Errorf("no IP addresses found for host: %s", host)
			}
			for _, ipAddr := range ips {
				if isBlockedIP(ipAddr.IP) {
					return nil, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, ipAddr.IP)
				}
			}
			// Dial the address that was checked, not a fresh lookup.
			return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
		},
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		host := req.URL.Hostname()
		ips, err := net.DefaultResolver.LookupIPAddr(req.Context(), host)
		if err != nil {
			return err
		}
		for _, ipAddr := range ips {
			if isBlockedIP(ipAddr.IP) {
				return fmt.Errorf("redirect to private/loopback IP blocked: %s (%s)", host, ipAddr.IP)
			}
		}
		return nil
	}
	return client
}
