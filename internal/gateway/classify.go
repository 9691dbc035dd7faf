package gateway

import (
	"net/http"
	"strings"

	"github.com/ryanuber/go-glob"
)

// Class is the caching class of an intercepted request. Classification
// is separated from I/O so the routing decision is testable on its
// own.
type Class int

const (
	// ClassBypass requests are forwarded untouched and never cached.
	ClassBypass Class = iota
	// ClassNavigate requests are top-level document loads.
	ClassNavigate
	// ClassAPI requests carry financial data and are cached with a TTL.
	ClassAPI
	// ClassStatic requests are shell assets, cached without expiry.
	ClassStatic
)

func (c Class) String() string {
	switch c {
	case ClassNavigate:
		return "navigate"
	case ClassAPI:
		return "api"
	case ClassStatic:
		return "static"
	}
	return "bypass"
}

// apiMarkers identify API requests by substring. This is a simple
// heuristic, not a precise router.
var apiMarkers = []string{"/api/", "transactions", "categories", "auth"}

// Classify determines the caching class for a request.
//
// host is the origin the gateway serves; requests for other hosts are
// bypassed unless they look like API requests. bypass is a list of
// glob patterns for paths that must never be cached.
func Classify(r *http.Request, host string, bypass []string) Class {
	for _, pattern := range bypass {
		if glob.Glob(pattern, r.URL.Path) {
			return ClassBypass
		}
	}

	api := strings.HasPrefix(r.URL.Path, "/api")
	for _, marker := range apiMarkers {
		if strings.Contains(r.URL.String(), marker) {
			api = true
		}
	}

	// Cross-origin requests that are not API requests are none of our
	// business.
	if host != "" && r.Host != "" && r.Host != host && !api {
		return ClassBypass
	}

	if api {
		return ClassAPI
	}

	if isNavigation(r) {
		return ClassNavigate
	}

	return ClassStatic
}

// isNavigation reports whether the request is a top-level HTML
// document load.
func isNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}

	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}

	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// isDocument reports whether the request destination is a document,
// which falls back to the cached application shell when offline.
func isDocument(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}

	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
