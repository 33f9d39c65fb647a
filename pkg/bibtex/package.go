package bibtex

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/cargocite/pkg/manifest"
)

// ReadmeSection is appended to README files when asked to advertise the
// citation file.
const ReadmeSection = `
## Citing

If you found this software useful consider citing it. See CITATION.bib for the recommended BibTeX entry.
`

// Package renders the citation record for a crate:
//
//	@misc{foo,
//		title={foo: A foo library},
//		author={A B and C D},
//		version = {0.1.0},
//		month = 10,
//		year = 2026,
//		url = {https://github.com/me/foo},
//		keywords = {cite, bibtex}
//	}
//
// The url and keywords lines are only present when the manifest sets them.
// An empty author list renders as author={}.
func Package(p manifest.Package, now time.Time) string {
	var b strings.Builder

	title := p.Name
	if p.Description != "" {
		title += ": " + p.Description
	}

	fmt.Fprintf(&b, "@misc{%s,\n", p.Name)
	fmt.Fprintf(&b, "\ttitle={%s},\n", title)
	fmt.Fprintf(&b, "\tauthor={%s},\n", JoinAuthors(p.Authors))
	fmt.Fprintf(&b, "\tversion = {%s},\n", p.Version)
	fmt.Fprintf(&b, "\tmonth = %d,\n", int(now.Month()))
	fmt.Fprintf(&b, "\tyear = %d,\n", now.Year())
	if p.Repository != "" {
		fmt.Fprintf(&b, "\turl = {%s},\n", p.Repository)
	}
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&b, "\tkeywords = {%s}\n", strings.Join(p.Keywords, ", "))
	}
	b.WriteString("}\n")

	return b.String()
}

// JoinAuthors joins author names the way BibTeX expects.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, " and ")
}
