// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// The [Client] type holds the shared request plumbing: default headers
// (crates.io rejects requests without a User-Agent), JSON decoding and
// status mapping. Registry-specific clients live in subpackages:
//
//   - [crates]: Rust crates.io
//
// # Errors
//
// Failures are reported with three sentinels that callers match with
// errors.Is: [ErrNotFound] for 404 responses, [ErrNetwork] for transport
// failures and other non-2xx statuses, and [ErrDecode] for bodies that don't
// match the expected JSON shape.
//
// There is no caching and no retry: every call is one request.
//
// [crates]: github.com/matzehuels/cargocite/pkg/integrations/crates
package integrations
