package crates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/cargocite/pkg/buildinfo"
	citeerrors "github.com/matzehuels/cargocite/pkg/errors"
	"github.com/matzehuels/cargocite/pkg/integrations"
)

// DefaultURL is the public crates.io host.
const DefaultURL = "https://crates.io"

// CrateInfo holds the descriptive metadata crates.io publishes for a crate.
//
// Zero values: all string fields are empty and Authors is nil when the
// registry omitted them. The struct is only used for one citation record
// and is never stored.
type CrateInfo struct {
	Description string   // Crate description (may be empty)
	Repository  string   // Repository URL (may be empty)
	HomePage    string   // Homepage URL (may be empty)
	Authors     []string // Author names (nil if the registry omitted them)
}

// URL returns the repository URL, falling back to the homepage.
func (c *CrateInfo) URL() string {
	if c.Repository != "" {
		return c.Repository
	}
	return c.HomePage
}

// Client provides access to the crates.io API.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client. An empty baseURL selects [DefaultURL];
// any other value points the client at a mirror serving the same API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		Client:  integrations.NewClient(map[string]string{"User-Agent": UserAgent()}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// UserAgent returns the identifier sent with every registry request.
func UserAgent() string {
	return fmt.Sprintf("cargo-cite/%s (https://github.com/matzehuels/cargocite)", buildinfo.Version)
}

// FetchCrate retrieves metadata for a crate with a single GET to
// <base>/api/v1/crates/<name>.
//
// Names that are not valid crate names are rejected without a request.
//
// Returns:
//   - CrateInfo populated with metadata on success
//   - an [citeerrors.ErrCodeInvalidPackage] error for invalid names
//
// Every other failure carries [citeerrors.ErrCodeRegistryLookup] and wraps
// one of the integrations sentinels:
//   - [integrations.ErrNotFound] if the crate doesn't exist
//   - [integrations.ErrNetwork] for transport failures and non-2xx statuses
//   - [integrations.ErrDecode] if the body is not the expected JSON shape
func (c *Client) FetchCrate(ctx context.Context, crate string) (*CrateInfo, error) {
	if err := citeerrors.ValidateCratesPackageName(crate); err != nil {
		return nil, err
	}

	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/api/v1/crates/%s", c.baseURL, crate), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			err = fmt.Errorf("%w: crate %s", err, crate)
		}
		return nil, citeerrors.Wrap(citeerrors.ErrCodeRegistryLookup, err, "lookup of %s failed", crate)
	}
	if data.Crate == nil {
		err := fmt.Errorf("%w: response for %s has no crate object", integrations.ErrDecode, crate)
		return nil, citeerrors.Wrap(citeerrors.ErrCodeRegistryLookup, err, "lookup of %s failed", crate)
	}

	return &CrateInfo{
		Description: data.Crate.Description,
		Repository:  data.Crate.Repository,
		HomePage:    data.Crate.HomePage,
		Authors:     data.Crate.Authors,
	}, nil
}

// Lookup is [Client.FetchCrate] with every failure folded into ok=false.
// Enrichment is best effort, so callers only need to know whether metadata
// is available.
func (c *Client) Lookup(ctx context.Context, crate string) (*CrateInfo, bool) {
	info, err := c.FetchCrate(ctx, crate)
	if err != nil {
		return nil, false
	}
	return info, true
}

// PageURL returns the public crates.io page of a crate.
func PageURL(crate string) string {
	return fmt.Sprintf("%s/crates/%s", DefaultURL, crate)
}

type crateResponse struct {
	Crate *struct {
		Description string   `json:"description"`
		Repository  string   `json:"repository"`
		HomePage    string   `json:"homepage"`
		Authors     []string `json:"authors"`
	} `json:"crate"`
}
