package bibtex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/cargocite/pkg/integrations/crates"
	"github.com/matzehuels/cargocite/pkg/manifest"
)

// KeyPrefix namespaces dependency citation keys.
const KeyPrefix = "rust-"

// Lookup fetches registry metadata for a crate. ok is false when the lookup
// failed for any reason. *crates.Client satisfies it.
type Lookup interface {
	Lookup(ctx context.Context, crate string) (info *crates.CrateInfo, ok bool)
}

// Formatter renders dependency citation records, enriching registry
// dependencies through a [Lookup].
type Formatter struct {
	lookup Lookup
	now    func() time.Time
}

// NewFormatter creates a Formatter. A nil lookup disables enrichment; a nil
// now uses time.Now.
func NewFormatter(lookup Lookup, now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{lookup: lookup, now: now}
}

// Dependencies renders one record per dependency of m, in name order.
// Lookups run one at a time; each record ends with a blank line.
func (f *Formatter) Dependencies(ctx context.Context, m *manifest.Manifest) string {
	var b strings.Builder
	for _, dep := range m.OrderedDependencies() {
		b.WriteString(f.Dependency(ctx, dep))
	}
	return b.String()
}

// Dependency renders the record for a single dependency.
func (f *Formatter) Dependency(ctx context.Context, dep manifest.NamedDependency) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@misc{%s%s,\n", KeyPrefix, dep.Name)
	fmt.Fprintf(&b, "\ttitle={%s},\n", dep.Name)

	src := dep.Source()
	switch src.Kind {
	case manifest.SourceLocalPath:
		fmt.Fprintf(&b, "\tnote = {Local dependency from path: %s},\n", src.Location)
	case manifest.SourceVersionControl:
		fmt.Fprintf(&b, "\turl = {%s},\n", src.Location)
		b.WriteString("\tnote = {Git dependency},\n")
	case manifest.SourceRegistry:
		f.writeEnrichment(ctx, &b, dep.Name)
	}

	if version, ok := dep.Version(); ok {
		fmt.Fprintf(&b, "\tversion = {%s},\n", version)
	}

	now := f.now()
	fmt.Fprintf(&b, "\tyear = %d,\n", now.Year())
	fmt.Fprintf(&b, "\tmonth = %d,\n", int(now.Month()))

	if src.Kind == manifest.SourceRegistry {
		fmt.Fprintf(&b, "\thowpublished = {%s},\n", crates.PageURL(dep.Name))
	}

	b.WriteString("}\n\n")
	return b.String()
}

func (f *Formatter) writeEnrichment(ctx context.Context, b *strings.Builder, name string) {
	if f.lookup == nil {
		return
	}
	info, ok := f.lookup.Lookup(ctx, name)
	if !ok {
		return
	}
	if info.Description != "" {
		fmt.Fprintf(b, "\tnote = {%s},\n", info.Description)
	}
	if len(info.Authors) > 0 {
		fmt.Fprintf(b, "\tauthor = {%s},\n", JoinAuthors(info.Authors))
	}
	if url := info.URL(); url != "" {
		fmt.Fprintf(b, "\turl = {%s},\n", url)
	}
}
