package diagram

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mermaid-filter/pkg/cache"
	"github.com/matzehuels/mermaid-filter/pkg/errors"
	"github.com/matzehuels/mermaid-filter/pkg/observability"
)

// Renderer renders diagrams through an engine and caches the results.
type Renderer struct {
	Store  cache.Store
	Engine Engine
	Logger *log.Logger
}

// NewRenderer creates a renderer.
// If logger is nil, log.Default() is used.
func NewRenderer(store cache.Store, engine Engine, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{Store: store, Engine: engine, Logger: logger}
}

// Key returns the cache key for source rendered with p:
// <engine>_<digest>.<ext>, where the digest covers the source, theme, width
// and height and the extension reflects the format.
func (r *Renderer) Key(source string, p Params) string {
	digest := cache.Digest(source, p.Theme, p.Width, p.Height)
	return cache.EntryKey(r.Engine.Name(), digest, p.Format.Ext())
}

// Render returns the path of the image for source. A cached entry is
// returned as is; otherwise the engine runs once and its output is stored.
func (r *Renderer) Render(ctx context.Context, source string, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	name := r.Engine.Name()
	key := r.Key(source, p)
	path := r.Store.Path(key)

	hit, err := r.Store.Has(ctx, key)
	if err != nil {
		return "", err
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, name)
		r.Logger.Debug("diagram cache hit", "path", path)
		return path, nil
	}
	observability.Cache().OnCacheMiss(ctx, name)

	observability.Render().OnRenderStart(ctx, name, p.Format.Ext())
	start := time.Now()
	data, err := r.Engine.Render(ctx, source, p)
	if err == nil && len(data) == 0 {
		err = errors.New(errors.ErrCodeRendererFailed, "%s produced no output", name)
	}
	observability.Render().OnRenderComplete(ctx, name, p.Format.Ext(), time.Since(start), err)
	if err != nil {
		return "", err
	}

	if err := r.Store.Set(ctx, key, data); err != nil {
		return "", err
	}
	observability.Cache().OnCacheSet(ctx, name, len(data))

	r.Logger.Debug("rendered diagram",
		"engine", name,
		"path", path,
		"bytes", len(data),
		"duration", time.Since(start).Round(time.Millisecond))
	return path, nil
}
