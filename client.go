package pinata

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/cactusweb/pinata/errors"
	"github.com/cactusweb/pinata/internal/api"
	"github.com/cactusweb/pinata/pintypes"
)

const (
	// DefaultEndpoint is the public base URL of the pinning service API.
	DefaultEndpoint = "https://api.pinata.cloud"

	// DefaultContentType is the content type used when detection fails.
	DefaultContentType = "application/octet-stream"

	// Credential header names the service expects on every request.
	headerAPIKey    = "pinata_api_key"
	headerSecretKey = "pinata_secret_api_key"
)

// Client is a pinning service client. It is safe for concurrent use:
// all fields are set at construction and never mutated.
type Client struct {
	// endpoint is the service base URL without a trailing slash
	endpoint string

	// creds is the API key pair sent as request headers
	creds pintypes.Credentials

	// httpClient executes requests
	httpClient api.HTTPDoer

	// maxAttempts is how many times a request is attempted
	maxAttempts int

	// fs is the filesystem abstraction for file operations
	fs fs.Filesystem
}

// New creates a new pinning client with the provided credentials and options.
// It fails with ErrMissingCredentials before any network traffic when
// either half of the key pair is absent.
//
// Example:
//
//	client, err := pinata.New(creds,
//	    pinata.WithTimeout(30*time.Second),
//	)
func New(creds pintypes.Credentials, opts ...pintypes.Option) (*Client, error) {
	if creds.APIKey == "" || creds.SecretKey == "" {
		return nil, errors.NewError("new", errors.ErrMissingCredentials)
	}

	cfg := &pintypes.ClientConfig{
		Endpoint:    DefaultEndpoint,
		MaxAttempts: 1, // one attempt: the request either completes or fails
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var httpClient api.HTTPDoer
	if cfg.HTTPClient != nil {
		httpClient = cfg.HTTPClient
	} else {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var filesystem fs.Filesystem
	if cfg.Filesystem != nil {
		filesystem = cfg.Filesystem
	} else {
		filesystem = billy.NewBaseOSFS()
	}

	return &Client{
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		creds:       creds,
		httpClient:  httpClient,
		maxAttempts: cfg.MaxAttempts,
		fs:          filesystem,
	}, nil
}

// NewWithHTTPClient creates a client with a custom transport.
// This is primarily used for testing with mocked transports.
func NewWithHTTPClient(creds pintypes.Credentials, doer api.HTTPDoer, opts ...pintypes.Option) (*Client, error) {
	if creds.APIKey == "" || creds.SecretKey == "" {
		return nil, errors.NewError("new", errors.ErrMissingCredentials)
	}

	cfg := &pintypes.ClientConfig{
		Endpoint:    DefaultEndpoint,
		MaxAttempts: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var filesystem fs.Filesystem
	if cfg.Filesystem != nil {
		filesystem = cfg.Filesystem
	} else {
		filesystem = billy.NewInMemoryFS()
	}

	return &Client{
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		creds:       creds,
		httpClient:  doer,
		maxAttempts: cfg.MaxAttempts,
		fs:          filesystem,
	}, nil
}

// do builds and executes a request, re-attempting on transport failure
// up to the configured attempt count. The body is rebuilt per attempt.
func (c *Client) do(
	ctx context.Context,
	method, url, contentType string,
	body []byte,
) (*http.Response, error) {
	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		req, err := c.newRequest(ctx, method, url, contentType, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Context errors are final regardless of remaining attempts.
		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", errors.ErrConnection, lastErr)
}

// newRequest builds an authenticated request against the service.
func (c *Client) newRequest(
	ctx context.Context,
	method, url, contentType string,
	body []byte,
) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.NewError("newRequest", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(headerAPIKey, c.creds.APIKey)
	req.Header.Set(headerSecretKey, c.creds.SecretKey)

	return req, nil
}
