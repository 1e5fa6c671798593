// Package release orchestrates publishing a versioned artifact set to
// the pinning service.
//
// A release run is a linear sequence: load the manifest, open the
// artifacts, issue one pin request, report the outcome. All inputs are
// explicit in Config; nothing is read from process globals, so runs are
// testable without environment mutation.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/cactusweb/pinata/manifest"
	"github.com/cactusweb/pinata/pintypes"
)

// DefaultManifestPath is the manifest location relative to the project root.
const DefaultManifestPath = "package.json"

// ErrNoPinner indicates that Run was called without a pinning client.
var ErrNoPinner = errors.New("release: no pinning client configured")

// Pinner is the slice of the pinning client a release run needs.
type Pinner interface {
	PinFiles(ctx context.Context, parts []pintypes.FilePart, opts ...pintypes.PinOption) (*pintypes.PinResult, error)
}

// Config holds the explicit inputs of a release run.
type Config struct {
	// ManifestPath locates the package manifest.
	// Defaults to DefaultManifestPath.
	ManifestPath string

	// Artifacts is the set of build outputs to publish.
	// Defaults to DefaultArtifacts("dist").
	Artifacts []Artifact

	// FS is the filesystem artifacts and the manifest are read from.
	// Defaults to the OS filesystem.
	FS fs.Filesystem

	// Out receives the progress and outcome report lines.
	// Defaults to discarding them.
	Out io.Writer

	// Pinner performs the upload. Required.
	Pinner Pinner
}

// Result is the outcome of a release run.
type Result struct {
	// Version is the release version taken from the manifest
	Version string

	// Items are the destination names, in upload order
	Items []string

	// Pin is the pin request outcome. A non-200 status is reported
	// here, not as an error from Run.
	Pin *pintypes.PinResult
}

// Run executes one release upload.
//
// The sequence is fixed: credentials were already validated when the
// pinning client was built, the manifest is read before any artifact is
// opened, and every artifact file stays open only for the duration of
// the request. The four artifacts travel in a single multipart request,
// so they are pinned atomically or not at all.
//
// A completed upload with a failure status is not an error: the status
// is reported on Out and carried in Result.Pin for the caller to act on.
// Errors are returned for configuration problems (missing manifest or
// version, unreadable artifact) and transport failures.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Pinner == nil {
		return nil, ErrNoPinner
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = DefaultManifestPath
	}
	if cfg.Artifacts == nil {
		cfg.Artifacts = DefaultArtifacts("dist")
	}
	if cfg.FS == nil {
		cfg.FS = billy.NewBaseOSFS()
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	m, err := manifest.Load(cfg.FS, cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	version, err := m.ReleaseVersion()
	if err != nil {
		return nil, err
	}

	parts := make([]pintypes.FilePart, 0, len(cfg.Artifacts))
	names := make([]string, 0, len(cfg.Artifacts))
	for _, artifact := range cfg.Artifacts {
		file, err := cfg.FS.Open(artifact.Source)
		if err != nil {
			return nil, fmt.Errorf("open artifact %s: %w", artifact.Source, err)
		}
		defer file.Close()

		dest := version + "/" + artifact.Name
		parts = append(parts, pintypes.FilePart{
			Name:        dest,
			Content:     file,
			ContentType: artifact.ContentType,
		})
		names = append(names, dest)
	}

	fmt.Fprintf(cfg.Out, "Uploading %s: %d files...\n", version, len(parts))

	pin, err := cfg.Pinner.PinFiles(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("pin files: %w", err)
	}

	if pin.OK() {
		fmt.Fprintln(cfg.Out, "Success!")
	} else {
		fmt.Fprintf(cfg.Out, "Error: %d\n", pin.StatusCode)
	}
	fmt.Fprintln(cfg.Out, string(pin.Body))

	return &Result{
		Version: version,
		Items:   names,
		Pin:     pin,
	}, nil
}
