// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches descriptive crate metadata from crates.io
// (https://crates.io), the Rust community's package registry, to enrich
// dependency citations.
//
// # Usage
//
//	client := crates.NewClient("")
//
//	info, ok := client.Lookup(ctx, "serde")
//	if ok {
//	    fmt.Println(info.Description, info.URL())
//	}
//
// [Client.FetchCrate] reports why a lookup failed; [Client.Lookup] folds all
// failures into ok=false for callers that treat enrichment as optional.
//
// # User-Agent
//
// The client includes a User-Agent header as requested by crates.io policy.
package crates
