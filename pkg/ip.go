package pkg

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1$`)

// IPIsLocal reports whether ip is loopback or a docker bridge gateway.
func IPIsLocal(ip string) bool {
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
		return true
	}
	return localDockerIpRegex.MatchString(ip)
}

// ClientIP returns the address of the caller, preferring the proxy headers. For
// X-Forwarded-For the first hop wins. The port is stripped; "" means no valid address was found.
func ClientIP(r *http.Request) string {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		ipAddr, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}
	ipAddr = strings.TrimSpace(ipAddr)

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}
	if net.ParseIP(ipAddr) == nil {
		return ""
	}
	return ipAddr
}
