package backend

import "strings"

const (
	// LocalBackendURL is the development backend on the usual Flask port.
	LocalBackendURL = "http://localhost:5000"

	// FallbackBackendURL is the hosted backend used when the dashboard is
	// served from a static-hosting domain that cannot co-host the API.
	FallbackBackendURL = "https://depremanaliz.onrender.com"
)

// ResolveBaseURL picks the analysis-backend base URL for a dashboard served
// from the given hostname. Loopback hosts talk to the local development
// backend; static hosting (GitHub Pages) talks to the fixed hosted backend;
// anything else assumes the API lives on the page's own origin.
func ResolveBaseURL(hostname, origin string) string {
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return LocalBackendURL
	}
	if strings.Contains(hostname, "github.io") {
		return FallbackBackendURL
	}
	return origin
}
