package release

import "path"

// Artifact pairs a build output on disk with the name and MIME type it
// is published under.
type Artifact struct {
	// Source is the on-disk path of the build output
	Source string

	// Name is the basename the artifact is published under; the
	// release version is prefixed at upload time
	Name string

	// ContentType is the MIME type declared for the artifact
	ContentType string
}

// DefaultArtifacts returns the fixed artifact set published on every
// release, rooted at distDir.
//
// The style.css source map is read from style.js.map (the bundler emits
// it under the entrypoint's name) but published as style.css.map, where
// consumers resolve it. Do not "fix" either side without confirming the
// bundler output and the published URL layout.
func DefaultArtifacts(distDir string) []Artifact {
	return []Artifact{
		{
			Source:      path.Join(distDir, "cactus.js"),
			Name:        "cactus.js",
			ContentType: "text/javascript",
		},
		{
			Source:      path.Join(distDir, "cactus.js.map"),
			Name:        "cactus.js.map",
			ContentType: "application/json",
		},
		{
			Source:      path.Join(distDir, "style.css"),
			Name:        "style.css",
			ContentType: "text/css",
		},
		{
			Source:      path.Join(distDir, "style.js.map"),
			Name:        "style.css.map",
			ContentType: "application/json",
		},
	}
}
