// pinata-upload publishes the current cactus web build to the Pinata
// pinning service under the version recorded in package.json.
//
// Credentials come from the PINATA_API_KEY and PINATA_SECRET_API_KEY
// environment variables; everything else is flag-configurable. The
// process exits 0 only when the service accepted the upload.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/spf13/pflag"

	"github.com/cactusweb/pinata"
	"github.com/cactusweb/pinata/manifest"
	"github.com/cactusweb/pinata/pintypes"
	"github.com/cactusweb/pinata/release"
)

const (
	envAPIKey    = "PINATA_API_KEY"
	envSecretKey = "PINATA_SECRET_API_KEY"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("pinata-upload", pflag.ContinueOnError)
	manifestPath := flags.String("manifest", release.DefaultManifestPath, "path to the package manifest")
	distDir := flags.String("dist", "dist", "directory holding the build artifacts")
	endpoint := flags.String("endpoint", pinata.DefaultEndpoint, "pinning service base URL")
	timeout := flags.Duration("timeout", 0, "request timeout (0 disables)")
	checkAuth := flags.Bool("check-auth", false, "verify the credentials and exit")
	unpinCID := flags.String("unpin", "", "unpin the given CID instead of uploading")
	showVersion := flags.Bool("version", false, "print the release version from the manifest and exit")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	// Needs only the manifest, so it runs before the credential check.
	if *showVersion {
		m, err := manifest.Load(billy.NewBaseOSFS(), *manifestPath)
		if err != nil {
			return err
		}
		version, err := m.ReleaseVersion()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, version)
		return nil
	}

	creds := pintypes.Credentials{
		APIKey:    os.Getenv(envAPIKey),
		SecretKey: os.Getenv(envSecretKey),
	}

	// Fails on missing credentials before any file or network I/O.
	client, err := pinata.New(creds,
		pinata.WithEndpoint(*endpoint),
		pinata.WithTimeout(*timeout),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch {
	case *checkAuth:
		if err := client.TestAuthentication(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "credentials OK")
		return nil

	case *unpinCID != "":
		if err := client.Unpin(ctx, *unpinCID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "unpinned %s\n", *unpinCID)
		return nil
	}

	result, err := release.Run(ctx, release.Config{
		ManifestPath: *manifestPath,
		Artifacts:    release.DefaultArtifacts(*distDir),
		FS:           billy.NewBaseOSFS(),
		Out:          stdout,
		Pinner:       client,
	})
	if err != nil {
		return err
	}

	if !result.Pin.OK() {
		return fmt.Errorf("upload failed with status %d", result.Pin.StatusCode)
	}
	return nil
}
