// Package testutil provides shared test helpers and mocks for the pinata module.
package testutil

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
)

// MockHTTPClient is a function-field mock for the client transport.
// Set DoFunc to control the response; captured requests are recorded
// for later assertions.
type MockHTTPClient struct {
	// DoFunc handles the request. When nil, a 200 response with an
	// empty JSON body is returned.
	DoFunc func(req *http.Request) (*http.Response, error)

	mu       sync.Mutex
	requests []*http.Request
}

// Do implements the transport interface.
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return Response(http.StatusOK, "{}"), nil
}

// Requests returns the requests seen so far.
func (m *MockHTTPClient) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// CallCount returns how many requests the mock has seen.
func (m *MockHTTPClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Response builds an *http.Response with the given status code and body.
func Response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// FormPart is a decoded part of a captured multipart request body.
type FormPart struct {
	// FieldName is the form field name
	FieldName string

	// FileName is the filename (the destination path for file parts)
	FileName string

	// ContentType is the declared part content type
	ContentType string

	// Body is the part content
	Body []byte
}

// DecodeMultipart parses a captured request's multipart body into its
// parts, in wire order.
func DecodeMultipart(req *http.Request) ([]FormPart, error) {
	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, errors.New("testutil: not a multipart request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var parts []FormPart
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		content, err := io.ReadAll(part)
		if err != nil {
			return nil, err
		}

		// Part.FileName applies filepath.Base, which would strip the
		// destination path prefix, so the disposition is parsed directly.
		_, dispParams, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		if err != nil {
			return nil, err
		}

		parts = append(parts, FormPart{
			FieldName:   part.FormName(),
			FileName:    dispParams["filename"],
			ContentType: part.Header.Get("Content-Type"),
			Body:        content,
		})
	}

	return parts, nil
}
