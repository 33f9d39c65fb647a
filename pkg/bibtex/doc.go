// Package bibtex renders citation records for crates.
//
// Every record is a BibTeX @misc entry. [Package] cites the crate described
// by a manifest; [Formatter.Dependencies] cites each of its dependencies,
// keyed "rust-<name>" so they never collide with the crate's own key.
//
// Dates are not taken from the manifest: month and year are the wall-clock
// date at the moment each record is rendered.
package bibtex
