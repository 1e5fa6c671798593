// Package api defines the transport interface used by the pinning client.
// Extracting the interface allows tests to substitute the HTTP client.
package api

import "net/http"

// HTTPDoer executes a single HTTP request.
// *http.Client satisfies this interface.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
