package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pinerrors "github.com/cactusweb/pinata/errors"
	"github.com/cactusweb/pinata/manifest"
)

// writeProject lays out a manifest and the four build artifacts in a
// temp directory and makes it the working directory.
func writeProject(t *testing.T, version string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile("package.json",
		[]byte(`{"name": "cactus", "version": "`+version+`"}`), 0o644))
	require.NoError(t, os.MkdirAll("dist", 0o755))
	for _, name := range []string{"cactus.js", "cactus.js.map", "style.css", "style.js.map"} {
		require.NoError(t, os.WriteFile(filepath.Join("dist", name), []byte(name), 0o644))
	}
}

func setCreds(t *testing.T) {
	t.Helper()
	t.Setenv("PINATA_API_KEY", "key")
	t.Setenv("PINATA_SECRET_API_KEY", "secret")
}

func TestRun_MissingCredentials(t *testing.T) {
	t.Setenv("PINATA_API_KEY", "")
	t.Setenv("PINATA_SECRET_API_KEY", "")

	err := run(nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, pinerrors.ErrMissingCredentials)
}

func TestRun_UploadSuccess(t *testing.T) {
	setCreds(t)
	writeProject(t, "1.2.3")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("pinata_api_key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"IpfsHash":"QmCLI"}`))
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	err := run([]string{"--endpoint", srv.URL}, out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Uploading 1.2.3: 4 files...")
	assert.Contains(t, out.String(), "Success!")
	assert.Contains(t, out.String(), "QmCLI")
}

func TestRun_UploadFailureExitsNonZero(t *testing.T) {
	setCreds(t)
	writeProject(t, "1.2.3")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"quota"}`))
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	err := run([]string{"--endpoint", srv.URL}, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	// The report still lands on the output before the exit status is set.
	assert.Contains(t, out.String(), "Error: 500")
	assert.Contains(t, out.String(), `{"error":"quota"}`)
}

func TestRun_CheckAuth(t *testing.T) {
	setCreds(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/testAuthentication", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	err := run([]string{"--check-auth", "--endpoint", srv.URL}, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "credentials OK")
}

func TestRun_Unpin(t *testing.T) {
	setCreds(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/pinning/unpin/QmGone", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	err := run([]string{"--unpin", "QmGone", "--endpoint", srv.URL}, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "unpinned QmGone")
}

func TestRun_VersionFlag(t *testing.T) {
	// No credentials: the flag must work from the manifest alone.
	t.Setenv("PINATA_API_KEY", "")
	t.Setenv("PINATA_SECRET_API_KEY", "")
	writeProject(t, "2.7.1")

	out := &bytes.Buffer{}
	err := run([]string{"--version"}, out)
	require.NoError(t, err)
	assert.Equal(t, "2.7.1\n", out.String())
}

func TestRun_VersionFlagMissingManifest(t *testing.T) {
	t.Chdir(t.TempDir())

	err := run([]string{"--version"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrNotFound)
}

func TestRun_Help(t *testing.T) {
	err := run([]string{"--help"}, &bytes.Buffer{})
	assert.NoError(t, err)
}
