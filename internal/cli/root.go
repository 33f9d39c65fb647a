package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cargocite/pkg/buildinfo"
	"github.com/matzehuels/cargocite/pkg/errors"
	"github.com/matzehuels/cargocite/pkg/integrations/crates"
	"github.com/matzehuels/cargocite/pkg/pipeline"
)

// RootCommand creates the root cobra command.
//
// Positional arguments are accepted and ignored, so the binary works both
// directly and as "cargo cite", where cargo passes the subcommand name as
// the first argument.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [flags]",
		Short: "Generate BibTeX citations for Rust crates",
		Long: `cargo-cite writes a CITATION.bib file for the crate in the current directory,
built from the [package] section of its Cargo.toml.

With --dependencies it instead searches for Cargo.toml files below the path
and writes one DEPENDENCIES.bib entry per declared dependency, enriched with
metadata from crates.io.

Every flag can also be set through the environment, e.g.
CARGO_CITE_FILENAME=STDOUT or CARGO_CITE_MAX_DEPTH=2.`,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.Flags()
	flags.BoolP(keyGenerate, "g", false, "generate "+pipeline.DefaultCitationFile+" (the default action)")
	flags.BoolP(keyOverwrite, "o", false, "overwrite existing citation files")
	flags.BoolP(keyReadme, "r", false, `append a "Citing" section to README files`)
	flags.StringP(keyPath, "p", "", "path to the crate (default: current directory)")
	flags.StringP(keyFilename, "f", "", fmt.Sprintf("citation file to write (default: %s, or %s with --dependencies); %q prints to standard output",
		pipeline.DefaultCitationFile, pipeline.DefaultDependenciesFile, pipeline.StdoutFilename))
	flags.BoolP(keyDependencies, "d", false, "generate BibTeX entries for all explicit dependencies")
	flags.IntP(keyMaxDepth, "m", pipeline.UnboundedDepth, "maximum search depth with --dependencies: 0 is the path only, -1 is unlimited")
	flags.String(keyRegistryURL, crates.DefaultURL, "crates.io compatible registry used for dependency metadata")
	_ = flags.MarkHidden(keyRegistryURL)
	root.PersistentFlags().BoolP(keyVerbose, "v", false, "enable verbose logging")

	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) run(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	v, err := newViper(flags)
	if err != nil {
		return err
	}
	cfg := loadConfig(v)
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	c.registerHooks()

	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)
	logger.Debug("Resolved configuration", "path", cfg.Options.Path, "filename", cfg.Options.Filename,
		"dependencies", cfg.Options.Dependencies, "max_depth", cfg.Options.MaxDepth, "registry", cfg.RegistryURL)

	prog := newProgress(logger)
	summary, err := c.newRunner(cfg.RegistryURL).Run(ctx, cfg.Options)
	if errors.Is(err, errors.ErrCodeDirectoryNotFound) {
		printError(c.Stderr, "%s", errors.UserMessage(err))
		return nil
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Processed %d %s", summary.Processed, plural(summary.Processed, "manifest")))

	printSummary(c.Stderr, summary)
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
