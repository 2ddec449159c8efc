package server

import (
	"net/http"
	"net/url"
	"strings"
)

// checkOrigin returns the WebSocket origin policy: requests with no
// Origin header (non-browser clients) pass, same-host origins pass,
// and otherwise the origin host must appear in the allowlist.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	allowedHosts := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		if u, err := url.Parse(a); err == nil && u.Host != "" {
			allowedHosts[strings.ToLower(u.Host)] = true
		} else {
			allowedHosts[strings.ToLower(a)] = true
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(u.Host)
		if strings.EqualFold(host, r.Host) {
			return true
		}
		return allowedHosts[host]
	}
}
