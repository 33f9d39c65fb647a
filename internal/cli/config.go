package cli

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/cargocite/pkg/integrations/crates"
	"github.com/matzehuels/cargocite/pkg/pipeline"
)

// Configuration keys. Each doubles as the long flag name; the environment
// variable is the key upper-cased with dashes replaced, prefixed with
// CARGO_CITE_ (e.g. CARGO_CITE_MAX_DEPTH).
const (
	keyGenerate     = "generate"
	keyOverwrite    = "overwrite"
	keyReadme       = "readme-append"
	keyPath         = "path"
	keyFilename     = "filename"
	keyDependencies = "dependencies"
	keyMaxDepth     = "max-depth"
	keyRegistryURL  = "registry-url"
	keyVerbose      = "verbose"
)

// config is the resolved configuration of one invocation.
type config struct {
	Options     pipeline.Options
	RegistryURL string
	Verbose     bool
}

// newViper returns a viper instance reading CARGO_CITE_* environment
// variables with flags bound on top. Explicitly set flags take precedence
// over the environment, which takes precedence over flag defaults.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyMaxDepth, pipeline.UnboundedDepth)
	v.SetDefault(keyRegistryURL, crates.DefaultURL)

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	return v, nil
}

// loadConfig resolves the final configuration from v.
func loadConfig(v *viper.Viper) config {
	return config{
		Options: pipeline.Options{
			Path:         v.GetString(keyPath),
			Filename:     v.GetString(keyFilename),
			Overwrite:    v.GetBool(keyOverwrite),
			ReadmeAppend: v.GetBool(keyReadme),
			Dependencies: v.GetBool(keyDependencies),
			MaxDepth:     v.GetInt(keyMaxDepth),
		},
		RegistryURL: v.GetString(keyRegistryURL),
		Verbose:     v.GetBool(keyVerbose),
	}
}
