package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/matzehuels/mermaid-filter/pkg/cache"
	"github.com/matzehuels/mermaid-filter/pkg/config"
	"github.com/matzehuels/mermaid-filter/pkg/diagram"
	"github.com/matzehuels/mermaid-filter/pkg/filter"
	"github.com/matzehuels/mermaid-filter/pkg/observability"
	"github.com/matzehuels/mermaid-filter/pkg/pandoc"
)

// runFilter converts one document from Stdin to Stdout.
func (c *CLI) runFilter(ctx context.Context, format string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	store, err := c.newStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if isTerminal(c.Stdin) {
		c.Logger.Info("Reading pandoc JSON from stdin; run through pandoc with --filter " + appName)
	}
	doc, err := pandoc.Decode(bufio.NewReader(c.Stdin))
	if err != nil {
		return err
	}

	stats := newRunStats()
	observability.SetRenderHooks(stats)
	observability.SetCacheHooks(stats)
	defer observability.Reset()

	prog := newProgress(c.Logger)
	f := filter.New(c.kinds(cfg, store), defaultParams(cfg), c.Logger)
	if err := f.Apply(ctx, doc, format); err != nil {
		return err
	}

	out := bufio.NewWriter(c.Stdout)
	if err := pandoc.Encode(out, doc); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	if stats.total() > 0 {
		prog.done(stats.summary())
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.cacheDir != "" {
		cfg.Cache.Dir = c.cacheDir
	}
	return cfg, nil
}

// newStore opens the diagram cache: the local directory, backed by redis
// when a URL is configured.
func (c *CLI) newStore(cfg config.Config) (cache.Store, error) {
	local := cache.NewFileStore(cfg.Cache.Dir)
	if cfg.Cache.RedisURL == "" {
		return local, nil
	}

	remote, err := cache.NewRedisBlobs(cfg.Cache.RedisURL, cache.DefaultRedisPrefix)
	if err != nil {
		return nil, err
	}
	tiered := cache.NewTiered(local, remote)
	tiered.OnRemoteError = func(op, key string, err error) {
		c.Logger.Warn("shared cache unavailable", "op", op, "key", key, "err", err)
	}
	c.Logger.Debug("using shared cache", "prefix", cache.DefaultRedisPrefix)
	return tiered, nil
}

// kinds returns the diagram kinds handled by the filter, all sharing store.
func (c *CLI) kinds(cfg config.Config, store cache.Store) []filter.Kind {
	mermaid := &diagram.MermaidEngine{
		Command:         cfg.Mermaid.Command,
		PuppeteerConfig: cfg.Mermaid.PuppeteerConfig,
		Logger:          c.Logger,
	}
	graphviz := &diagram.GraphvizEngine{Logger: c.Logger}

	return []filter.Kind{
		{
			Name:     "mermaid",
			Label:    "Mermaid",
			Classes:  []string{"mermaid"},
			Renderer: diagram.NewRenderer(store, mermaid, c.Logger),
		},
		{
			Name:     "graphviz",
			Label:    "Graphviz",
			Classes:  []string{"graphviz", "dot"},
			Renderer: diagram.NewRenderer(store, graphviz, c.Logger),
		},
	}
}

func defaultParams(cfg config.Config) diagram.Params {
	return diagram.Params{
		Theme:  cfg.Defaults.Theme,
		Width:  cfg.Defaults.Width,
		Height: cfg.Defaults.Height,
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
