// Package cli implements the cargo-cite command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargocite/pkg/integrations/crates"
	"github.com/matzehuels/cargocite/pkg/pipeline"
)

const (
	// appName is the binary name used in help and completion text.
	appName = "cargo-cite"

	// envPrefix namespaces environment overrides, e.g. CARGO_CITE_FILENAME.
	envPrefix = "CARGO_CITE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger

	// Stdout receives BibTeX printed with the STDOUT filename. Log output
	// and the run summary go to the logger's writer instead.
	Stdout io.Writer

	// Stderr receives the run summary.
	Stderr io.Writer
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner that enriches dependencies from the
// registry at registryURL.
func (c *CLI) newRunner(registryURL string) *pipeline.Runner {
	return pipeline.NewRunner(crates.NewClient(registryURL), c.Logger, c.Stdout)
}
