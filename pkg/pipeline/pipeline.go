// Package pipeline runs a complete cargo-cite pass over a directory.
//
// A run moves through fixed stages, each exactly once:
//
//  1. Resolve the root directory (the only stage that can fail the run)
//  2. Discover manifests: the root's own Cargo.toml, or every Cargo.toml
//     below it in dependency mode
//  3. Process each manifest in discovery order
//  4. Aggregate dependency citations into one output (dependency mode only)
//  5. Return a [Summary] of processed and skipped manifests
//
// Every per-file failure is logged with its path and counted as a skip.
//
// # Usage
//
//	runner := pipeline.NewRunner(crates.NewClient(""), logger, os.Stdout)
//	summary, err := runner.Run(ctx, pipeline.Options{
//	    Path:         ".",
//	    Dependencies: true,
//	    MaxDepth:     pipeline.UnboundedDepth,
//	})
package pipeline

import (
	"github.com/matzehuels/cargocite/pkg/locate"
)

const (
	// DefaultCitationFile is written next to each manifest.
	DefaultCitationFile = "CITATION.bib"

	// DefaultDependenciesFile is written at the root in dependency mode.
	DefaultDependenciesFile = "DEPENDENCIES.bib"

	// StdoutFilename is the filename value that prints output instead of
	// writing a file.
	StdoutFilename = "STDOUT"

	// UnboundedDepth lets discovery descend without limit.
	UnboundedDepth = locate.Unbounded
)

// Options is the configuration for one run. It is built once from the
// command line and never modified afterwards.
type Options struct {
	// Path is the root directory. Empty means the working directory.
	Path string

	// Filename overrides the output file name. Empty selects
	// DefaultCitationFile or DefaultDependenciesFile; StdoutFilename prints.
	Filename string

	// Overwrite replaces existing output files.
	Overwrite bool

	// ReadmeAppend appends a "Citing" section to README files next to the
	// manifest.
	ReadmeAppend bool

	// Dependencies switches to dependency-bibliography mode.
	Dependencies bool

	// MaxDepth bounds discovery in dependency mode: 0 is the root only and
	// any negative value is unbounded.
	MaxDepth int
}

// DefaultOptions returns options for a plain run in the working directory.
func DefaultOptions() Options {
	return Options{MaxDepth: UnboundedDepth}
}

// ToStdout reports whether output goes to standard output.
func (o Options) ToStdout() bool {
	return o.Filename == StdoutFilename
}

func (o Options) citationFile() string {
	if o.Filename != "" {
		return o.Filename
	}
	return DefaultCitationFile
}

func (o Options) dependenciesFile() string {
	if o.Filename != "" {
		return o.Filename
	}
	return DefaultDependenciesFile
}

// Summary reports the outcome of a run.
type Summary struct {
	Root      string   // Resolved root directory
	Found     int      // Manifests discovered
	Processed int      // Manifests handled successfully
	Skipped   int      // Manifests skipped because of a per-file failure
	Files     []string // Files created or replaced, in write order
}
