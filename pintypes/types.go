// Package pintypes provides shared type definitions for the pinata module.
package pintypes

import (
	"io"
	"net/http"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// Credentials holds the API key pair for the pinning service.
// The values are opaque to this module and are never logged.
type Credentials struct {
	// APIKey is the public half of the key pair
	APIKey string

	// SecretKey is the secret half of the key pair
	SecretKey string
}

// FilePart describes one file entry in a pin request.
// Parts are encoded into the request body in the order they are given.
type FilePart struct {
	// Name is the destination path the file is published under,
	// for example "1.2.3/cactus.js"
	Name string

	// Content supplies the file bytes
	Content io.Reader

	// ContentType is the MIME type declared for the part.
	// When empty, the client detects one from the name's extension.
	ContentType string
}

// PinResult is the outcome of a pin request. It is returned for every
// completed HTTP exchange, successful or not, so callers can react to
// failures without parsing console output.
type PinResult struct {
	// StatusCode is the HTTP status returned by the service
	StatusCode int

	// Body is the raw response body
	Body []byte

	// CID is the content identifier assigned by the service.
	// Only set when the service reported success.
	CID string

	// PinSize is the pinned content size in bytes, when reported
	PinSize int64

	// Timestamp is the pin creation time as reported by the service
	Timestamp string

	// Duration is how long the request took
	Duration time.Duration
}

// OK reports whether the service accepted the pin.
func (r *PinResult) OK() bool {
	return r.StatusCode == http.StatusOK
}

// ClientConfig holds the configuration for the pinning client.
type ClientConfig struct {
	// Endpoint is the service base URL
	Endpoint string

	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration

	// MaxAttempts is how many times a request is attempted.
	// Defaults to 1: a request either completes or fails once.
	MaxAttempts int

	// HTTPClient overrides the default HTTP client when set
	HTTPClient *http.Client

	// Filesystem is the filesystem used for file-based operations
	Filesystem fs.Filesystem
}

// Option is a functional option for configuring the client.
type Option func(*ClientConfig)

// PinOptionConfig holds per-request options for pin operations.
type PinOptionConfig struct {
	// Name is the display name recorded for the pin
	Name string

	// Metadata is the key/value metadata recorded for the pin
	Metadata map[string]string
}

// PinOption is a functional option for configuring a pin request.
type PinOption func(*PinOptionConfig)
