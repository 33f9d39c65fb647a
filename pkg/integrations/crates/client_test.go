package crates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	citeerrors "github.com/matzehuels/cargocite/pkg/errors"
	"github.com/matzehuels/cargocite/pkg/integrations"
)

func TestNewClient(t *testing.T) {
	c := NewClient("")
	if c.Client == nil {
		t.Error("expected client to be initialized")
	}
	if c.baseURL != DefaultURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultURL)
	}

	c = NewClient("https://mirror.example/")
	if c.baseURL != "https://mirror.example" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}

func TestClient_FetchCrate(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(map[string]any{
			"crate": map[string]any{
				"name":        "serde",
				"description": "A serialization framework",
				"repository":  "https://github.com/serde-rs/serde",
				"homepage":    "https://serde.rs",
				"authors":     []string{"Erick Tryzelaar", "David Tolnay"},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	info, err := c.FetchCrate(context.Background(), "serde")
	if err != nil {
		t.Fatalf("FetchCrate failed: %v", err)
	}

	if gotPath != "/api/v1/crates/serde" {
		t.Errorf("request path = %q, want /api/v1/crates/serde", gotPath)
	}
	if !strings.HasPrefix(gotAgent, "cargo-cite/") {
		t.Errorf("User-Agent = %q, want cargo-cite/ prefix", gotAgent)
	}
	if info.Description != "A serialization framework" {
		t.Errorf("Description = %q", info.Description)
	}
	if info.URL() != "https://github.com/serde-rs/serde" {
		t.Errorf("URL() = %q, want repository", info.URL())
	}
	if len(info.Authors) != 2 || info.Authors[0] != "Erick Tryzelaar" {
		t.Errorf("Authors = %v", info.Authors)
	}
}

func TestClient_FetchCrate_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.FetchCrate(context.Background(), "nonexistent")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !citeerrors.Is(err, citeerrors.ErrCodeRegistryLookup) {
		t.Errorf("expected REGISTRY_LOOKUP, got %v", err)
	}
}

func TestClient_FetchCrate_NoCrateObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"detail":"Not Found"}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.FetchCrate(context.Background(), "serde")
	if !errors.Is(err, integrations.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestClient_FetchCrate_InvalidName(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.FetchCrate(context.Background(), "../admin")
	if !citeerrors.Is(err, citeerrors.ErrCodeInvalidPackage) {
		t.Errorf("expected INVALID_PACKAGE, got %v", err)
	}
	if called {
		t.Error("no request should be made for an invalid crate name")
	}
}

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/crates/serde":
			w.Write([]byte(`{"crate":{"description":"ser"}}`))
		case "/api/v1/crates/broken":
			w.Write([]byte(`not json`))
		case "/api/v1/crates/down":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL)
	ctx := context.Background()

	if info, ok := c.Lookup(ctx, "serde"); !ok || info.Description != "ser" {
		t.Errorf("Lookup(serde) = %+v, %v", info, ok)
	}
	for _, name := range []string{"broken", "down", "missing", "bad/name"} {
		if info, ok := c.Lookup(ctx, name); ok || info != nil {
			t.Errorf("Lookup(%s) = %+v, %v, want nil, false", name, info, ok)
		}
	}
}

func TestCrateInfo_URL(t *testing.T) {
	tests := []struct {
		name string
		info CrateInfo
		want string
	}{
		{"repository wins", CrateInfo{Repository: "r", HomePage: "h"}, "r"},
		{"homepage fallback", CrateInfo{HomePage: "h"}, "h"},
		{"neither", CrateInfo{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageURL(t *testing.T) {
	if got := PageURL("serde"); got != "https://crates.io/crates/serde" {
		t.Errorf("PageURL() = %q", got)
	}
}
