// Package manifest reads the project package manifest and extracts the
// release version.
//
// The manifest is a package.json-style JSON document. Comments and
// trailing commas are tolerated so hand-maintained manifests parse.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/tidwall/jsonc"
)

// Sentinel errors for manifest failures. All of them surface before any
// artifact is opened or request is built.
var (
	// ErrNotFound indicates the manifest file could not be opened
	ErrNotFound = errors.New("manifest: file not found")

	// ErrMalformed indicates the manifest is not a valid JSON document
	ErrMalformed = errors.New("manifest: malformed document")

	// ErrVersionMissing indicates the manifest has no version field
	ErrVersionMissing = errors.New("manifest: version field missing")

	// ErrInvalidVersion indicates the version field is not valid semver
	ErrInvalidVersion = errors.New("manifest: invalid version")
)

// Manifest is the parsed package manifest.
type Manifest struct {
	// Name is the package name, when present
	Name string `json:"name"`

	// Version is the raw version field
	Version string `json:"version"`
}

// Load reads and parses the manifest at path on the given filesystem.
func Load(fsys fs.Filesystem, path string) (*Manifest, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	return &m, nil
}

// ReleaseVersion returns the manifest's version after validating it is
// well-formed semver. The version prefixes every destination path of a
// release, so a malformed one would poison all published names.
func (m *Manifest) ReleaseVersion() (string, error) {
	if m.Version == "" {
		return "", ErrVersionMissing
	}

	if _, err := semver.NewVersion(m.Version); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidVersion, m.Version, err)
	}

	return m.Version, nil
}
