package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargocite/pkg/bibtex"
	"github.com/matzehuels/cargocite/pkg/errors"
	"github.com/matzehuels/cargocite/pkg/locate"
	"github.com/matzehuels/cargocite/pkg/manifest"
	"github.com/matzehuels/cargocite/pkg/observability"
)

// Runner executes runs. It holds no state between runs.
type Runner struct {
	Logger    *log.Logger
	Formatter *bibtex.Formatter
	Stdout    io.Writer
	Now       func() time.Time
}

// NewRunner creates a runner that enriches dependency citations through
// lookup. A nil lookup disables enrichment, a nil logger uses log.Default()
// and a nil stdout uses os.Stdout.
func NewRunner(lookup bibtex.Lookup, logger *log.Logger, stdout io.Writer) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Runner{
		Logger:    logger,
		Formatter: bibtex.NewFormatter(lookup, time.Now),
		Stdout:    stdout,
		Now:       time.Now,
	}
}

// Run performs one pass. The only error returned for a bad filesystem state
// is [errors.ErrCodeDirectoryNotFound]; all per-file failures are logged and
// counted in the summary. A cancelled context stops the run between
// manifests.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	root, err := resolveRoot(opts.Path)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Root: root}

	hooks := observability.Pipeline()
	start := time.Now()
	paths := r.discover(root, opts)
	hooks.OnDiscoverComplete(ctx, root, len(paths), time.Since(start))
	summary.Found = len(paths)
	if len(paths) == 0 {
		return summary, nil
	}

	var deps strings.Builder
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		hooks.OnManifestStart(ctx, path)
		start := time.Now()

		var err error
		if opts.Dependencies {
			err = r.collectDependencies(ctx, path, &deps)
		} else {
			err = r.citePackage(path, opts, summary)
		}
		hooks.OnManifestComplete(ctx, path, time.Since(start), err)

		if err != nil {
			r.skip(path, err)
			summary.Skipped++
			continue
		}
		summary.Processed++
	}

	if opts.Dependencies && deps.Len() > 0 {
		r.writeAggregate(root, opts, deps.String(), summary)
	}

	return summary, nil
}

func resolveRoot(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "could not access current directory")
		}
		return wd, nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "directory %q does not exist", path)
	}
	return path, nil
}

func (r *Runner) discover(root string, opts Options) []string {
	if !opts.Dependencies {
		path := filepath.Join(root, manifest.FileName)
		if _, err := os.Stat(path); err != nil {
			r.Logger.Warnf("No %s found in %s", manifest.FileName, root)
			return nil
		}
		return []string{path}
	}

	r.Logger.Infof("Searching for %s files in %s (%s)", manifest.FileName, root, depthLabel(opts.MaxDepth))
	paths := locate.Find(root, opts.MaxDepth, locate.WithLogger(r.Logger))

	switch {
	case len(paths) > 0:
		r.Logger.Infof("Found %d %s", len(paths), plural(len(paths), manifest.FileName+" file"))
	case opts.MaxDepth == 0:
		r.Logger.Warnf("No %s found in %s", manifest.FileName, root)
		r.Logger.Info("Use --max-depth N to search N levels of subdirectories, or --max-depth -1 to search all of them")
	case opts.MaxDepth > 0:
		r.Logger.Warnf("No %s files found in %s or its subdirectories (searched %d %s deep)",
			manifest.FileName, root, opts.MaxDepth, plural(opts.MaxDepth, "level"))
	default:
		r.Logger.Warnf("No %s files found in %s or its subdirectories", manifest.FileName, root)
	}
	return paths
}

// citePackage handles one manifest outside dependency mode.
func (r *Runner) citePackage(path string, opts Options, summary *Summary) error {
	r.Logger.Debug("Processing manifest", "path", path)

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)

	if opts.ReadmeAppend {
		if err := r.appendReadmes(dir); err != nil {
			return err
		}
	}

	citation := bibtex.Package(m.Package, r.Now())
	if opts.ToStdout() {
		if _, err := io.WriteString(r.Stdout, citation); err != nil {
			return errors.Wrap(errors.ErrCodeFileWrite, err, "could not write citation to standard output")
		}
		return nil
	}

	dest := filepath.Join(dir, opts.citationFile())
	if err := r.writeFile(dest, citation, opts.Overwrite); err != nil {
		return err
	}
	summary.Files = append(summary.Files, dest)
	r.Logger.Info("Created citation file", "path", dest)
	return nil
}

// appendReadmes appends the Citing section to every regular file in dir
// whose name contains "README".
func (r *Runner) appendReadmes(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileRead, err, "could not list %s", dir)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.Contains(entry.Name(), "README") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		r.Logger.Info("Appending to readme file", "path", path)
		if err := appendFile(path, bibtex.ReadmeSection); err != nil {
			return errors.Wrap(errors.ErrCodeFileWrite, err, "could not append to %s", path)
		}
	}
	return nil
}

func appendFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// collectDependencies handles one manifest in dependency mode.
func (r *Runner) collectDependencies(ctx context.Context, path string, out *strings.Builder) error {
	r.Logger.Debug("Processing manifest", "path", path)

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	out.WriteString(r.Formatter.Dependencies(ctx, m))
	return nil
}

func (r *Runner) writeAggregate(root string, opts Options, text string, summary *Summary) {
	if opts.ToStdout() {
		if _, err := io.WriteString(r.Stdout, text); err != nil {
			r.Logger.Warn("Could not write dependency citations", "err", err)
		}
		return
	}

	dest := filepath.Join(root, opts.dependenciesFile())
	if err := r.writeFile(dest, text, opts.Overwrite); err != nil {
		r.skip(dest, err)
		return
	}
	summary.Files = append(summary.Files, dest)
	r.Logger.Info("Created combined dependencies citation file", "path", dest)
}

// writeFile replaces dest with text unless it exists and overwrite is off.
func (r *Runner) writeFile(dest, text string, overwrite bool) error {
	if _, err := os.Stat(dest); err == nil && !overwrite {
		return errors.New(errors.ErrCodeDestinationExists, "citation file already exists at %s", dest)
	}
	if err := os.WriteFile(dest, []byte(text), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "could not write %s", dest)
	}
	return nil
}

func (r *Runner) skip(path string, err error) {
	if errors.Is(err, errors.ErrCodeDestinationExists) {
		r.Logger.Warn(errors.UserMessage(err))
		r.Logger.Info("Use --overwrite to replace it")
		return
	}
	if !errors.IsSkip(err) {
		r.Logger.Error("Skipping file", "path", path, "err", err)
		return
	}
	r.Logger.Warn("Skipping file", "path", path, "err", errors.UserMessage(err))
}

func depthLabel(maxDepth int) string {
	switch {
	case maxDepth < 0:
		return "searching all subdirectories"
	case maxDepth == 0:
		return "current directory only"
	default:
		return fmt.Sprintf("max depth: %d", maxDepth)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
