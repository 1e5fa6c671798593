// Package pinata provides tests for client construction and configuration.
package pinata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pinerrors "github.com/cactusweb/pinata/errors"
	"github.com/cactusweb/pinata/internal/testutil"
	"github.com/cactusweb/pinata/pintypes"
)

// TestNew_CredentialValidation verifies that construction fails before
// any I/O when the key pair is incomplete.
func TestNew_CredentialValidation(t *testing.T) {
	tests := []struct {
		name    string
		creds   pintypes.Credentials
		wantErr bool
	}{
		{name: "both halves present", creds: pintypes.Credentials{APIKey: "k", SecretKey: "s"}},
		{name: "missing api key", creds: pintypes.Credentials{SecretKey: "s"}, wantErr: true},
		{name: "missing secret key", creds: pintypes.Credentials{APIKey: "k"}, wantErr: true},
		{name: "both missing", creds: pintypes.Credentials{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.creds)
			if tt.wantErr {
				assert.ErrorIs(t, err, pinerrors.ErrMissingCredentials)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

// TestWithEndpoint verifies endpoint overrides, including trailing slash handling.
func TestWithEndpoint(t *testing.T) {
	mock := &testutil.MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "gateway.example.com", req.URL.Host)
			assert.Equal(t, "/pinning/pinFileToIPFS", req.URL.Path)
			return testutil.Response(http.StatusOK, "{}"), nil
		},
	}

	client, err := NewWithHTTPClient(testCreds, mock, WithEndpoint("https://gateway.example.com/"))
	require.NoError(t, err)

	_, err = client.PinFiles(context.Background(), []pintypes.FilePart{
		{Name: "f.txt", Content: strings.NewReader("x"), ContentType: "text/plain"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

// TestWithMaxAttempts verifies retry behavior on transport failure.
func TestWithMaxAttempts(t *testing.T) {
	t.Run("transport failure retried up to the attempt count", func(t *testing.T) {
		mock := &testutil.MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		client, err := NewWithHTTPClient(testCreds, mock, WithMaxAttempts(3))
		require.NoError(t, err)

		_, err = client.PinFiles(context.Background(), []pintypes.FilePart{
			{Name: "f.txt", Content: strings.NewReader("x"), ContentType: "text/plain"},
		})
		assert.ErrorIs(t, err, pinerrors.ErrConnection)
		assert.Equal(t, 3, mock.CallCount())
	})

	t.Run("default is a single attempt", func(t *testing.T) {
		mock := &testutil.MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		client, err := NewWithHTTPClient(testCreds, mock)
		require.NoError(t, err)

		_, err = client.PinFiles(context.Background(), []pintypes.FilePart{
			{Name: "f.txt", Content: strings.NewReader("x"), ContentType: "text/plain"},
		})
		assert.ErrorIs(t, err, pinerrors.ErrConnection)
		assert.Equal(t, 1, mock.CallCount())
	})

	t.Run("HTTP error statuses are never retried", func(t *testing.T) {
		mock := &testutil.MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return testutil.Response(http.StatusBadGateway, "{}"), nil
			},
		}

		client, err := NewWithHTTPClient(testCreds, mock, WithMaxAttempts(3))
		require.NoError(t, err)

		result, err := client.PinFiles(context.Background(), []pintypes.FilePart{
			{Name: "f.txt", Content: strings.NewReader("x"), ContentType: "text/plain"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, result.StatusCode)
		assert.Equal(t, 1, mock.CallCount())
	})
}

// TestPinResult_Duration verifies the result carries a measured duration.
func TestPinResult_Duration(t *testing.T) {
	mock := &testutil.MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			time.Sleep(time.Millisecond)
			return testutil.Response(http.StatusOK, "{}"), nil
		},
	}

	client, err := NewWithHTTPClient(testCreds, mock)
	require.NoError(t, err)

	result, err := client.PinFiles(context.Background(), []pintypes.FilePart{
		{Name: "f.txt", Content: strings.NewReader("x"), ContentType: "text/plain"},
	})
	require.NoError(t, err)
	assert.Greater(t, result.Duration, time.Duration(0))
}

// TestClient_ResponseBodyDrained verifies the raw body is carried on the
// result even when it is not valid JSON.
func TestClient_ResponseBodyDrained(t *testing.T) {
	mock := &testutil.MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("not json")),
				Header:     http.Header{},
			}, nil
		},
	}

	client, err := NewWithHTTPClient(testCreds, mock)
	require.NoError(t, err)

	result, err := client.PinFiles(context.Background(), []pintypes.FilePart{
		{Name: "f.txt", Content: strings.NewReader("x"), ContentType: "text/plain"},
	})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "not json", string(result.Body))
	assert.Empty(t, result.CID)
}
