// Package pinata provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package pinata

import (
	"net/http"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/cactusweb/pinata/pintypes"
)

// WithEndpoint sets a custom service base URL.
// This is useful for self-hosted gateways or test servers.
func WithEndpoint(endpoint string) pintypes.Option {
	return func(c *pintypes.ClientConfig) {
		if endpoint != "" {
			c.Endpoint = endpoint
		}
	}
}

// WithTimeout sets the timeout for individual requests.
// Default is no timeout (0), matching the single blocking call the
// upload flow performs.
func WithTimeout(timeout time.Duration) pintypes.Option {
	return func(c *pintypes.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithMaxAttempts sets how many times a request is attempted on
// transport failure. Default is 1 (no retry). HTTP error statuses are
// never retried; they are surfaced in the result.
func WithMaxAttempts(attempts int) pintypes.Option {
	return func(c *pintypes.ClientConfig) {
		if attempts > 0 {
			c.MaxAttempts = attempts
		}
	}
}

// WithHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithHTTPClient(client *http.Client) pintypes.Option {
	return func(c *pintypes.ClientConfig) {
		c.HTTPClient = client
	}
}

// WithFilesystem sets a custom filesystem implementation for file operations.
// This allows using in-memory filesystems for testing or virtual filesystems.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) pintypes.Option {
	return func(c *pintypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithPinName sets the display name recorded for a pin.
func WithPinName(name string) pintypes.PinOption {
	return func(c *pintypes.PinOptionConfig) {
		c.Name = name
	}
}

// WithPinMetadata sets key/value metadata recorded for a pin.
func WithPinMetadata(metadata map[string]string) pintypes.PinOption {
	return func(c *pintypes.PinOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string)
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}
