// Package config loads mermaid-filter settings from a TOML file.
//
// Every field is optional. Values left out of the file keep the built-in
// defaults returned by [Default]. Settings here sit below document metadata
// and block attributes: a diagram's own attributes always win.
//
//	[cache]
//	dir = "generated_diagrams"
//	redis_url = "redis://ci-cache:6379/0"
//
//	[mermaid]
//	command = "mmdc"
//	puppeteer_config = "puppeteer.json"
//
//	[defaults]
//	theme = "default"
//	width = 800
//	height = 600
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// DefaultFile is the config file picked up from the working directory when
// no path is given explicitly.
const DefaultFile = "mermaid-filter.toml"

// Config is the full filter configuration.
type Config struct {
	Cache    Cache    `toml:"cache"`
	Mermaid  Mermaid  `toml:"mermaid"`
	Defaults Defaults `toml:"defaults"`
}

// Cache configures where rendered diagrams are kept.
type Cache struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// Mermaid configures the mermaid CLI invocation.
type Mermaid struct {
	Command         string `toml:"command"`
	PuppeteerConfig string `toml:"puppeteer_config"`
}

// Defaults are the render parameters used when neither the block nor the
// document metadata sets them.
type Defaults struct {
	Theme  string `toml:"theme"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache:   Cache{Dir: "generated_diagrams"},
		Mermaid: Mermaid{Command: "mmdc"},
		Defaults: Defaults{
			Theme:  "default",
			Width:  800,
			Height: 600,
		},
	}
}

// Load reads the config file at path on top of [Default].
//
// An empty path loads [DefaultFile] from the working directory if it exists
// and returns the defaults otherwise. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result. Keys absent
// from data leave the corresponding fields of cfg unchanged.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Mermaid.Command == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "mermaid.command must not be empty")
	}
	if c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.dir must not be empty")
	}
	if c.Defaults.Theme == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.theme must not be empty")
	}
	if c.Defaults.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.width must be positive, got %d", c.Defaults.Width)
	}
	if c.Defaults.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.height must be positive, got %d", c.Defaults.Height)
	}
	return nil
}
