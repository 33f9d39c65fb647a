// Package pkg provides the core libraries for cargo-cite.
//
// # Overview
//
// cargo-cite turns the metadata of Rust crates into BibTeX entries. The pkg
// directory is organized leaf-first:
//
//  1. [manifest] - Cargo.toml model and loader
//  2. [integrations] - HTTP client for the crates.io registry
//  3. [bibtex] - Citation rendering for packages and dependencies
//  4. [locate] - Discovery of Cargo.toml files below a directory
//  5. [pipeline] - Orchestration (resolve → discover → process → aggregate)
//
// Supporting packages: [errors] (coded errors), [observability] (hooks) and
// [buildinfo] (ldflags version data).
//
// # Architecture
//
// The data flow of a dependency run:
//
//	Directory
//	    ↓
//	[locate] (Cargo.toml paths)
//	    ↓
//	[manifest] (package + dependencies)
//	    ↓
//	[bibtex] (+ crates.io metadata via [integrations/crates])
//	    ↓
//	DEPENDENCIES.bib or standard output
//
// # Quick Start
//
//	m, err := manifest.Load("Cargo.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(bibtex.Package(m.Package, time.Now()))
//
// [manifest]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/manifest
// [integrations]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/integrations
// [integrations/crates]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/integrations/crates
// [bibtex]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/bibtex
// [locate]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/locate
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cargocite/pkg/buildinfo
package pkg
