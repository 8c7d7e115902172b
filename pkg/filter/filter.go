package filter

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mermaid-filter/pkg/diagram"
	"github.com/matzehuels/mermaid-filter/pkg/errors"
	"github.com/matzehuels/mermaid-filter/pkg/observability"
	"github.com/matzehuels/mermaid-filter/pkg/pandoc"
)

// DisplayWidth is the default width attribute of generated images.
const DisplayWidth = "90%"

// paramKeys are block attributes consumed as render parameters. They are
// not copied onto the image.
var paramKeys = []string{"theme", "width", "height"}

// Renderer renders diagram source to an image path.
type Renderer interface {
	Render(ctx context.Context, source string, p diagram.Params) (string, error)
}

// Kind binds code block classes to a renderer.
type Kind struct {
	// Name identifies the kind in metadata keys and warnings, e.g. "mermaid".
	Name string
	// Label is used in the image alt text, e.g. "Mermaid" → "Mermaid Diagram".
	Label string
	// Classes select the code blocks handled by this kind.
	Classes []string

	Renderer Renderer
}

// Context is the document-level input of a transform.
type Context struct {
	// Target is the pandoc output format, e.g. "html5" or "latex".
	Target string
	// Meta is the document metadata flattened to plain text.
	Meta map[string]string
}

// NewContext builds a Context, flattening metadata values to text.
func NewContext(target string, meta pandoc.Meta) Context {
	return Context{Target: target, Meta: meta.Strings()}
}

// Filter transforms diagram code blocks.
type Filter struct {
	kinds    []Kind
	defaults diagram.Params
	logger   *log.Logger
}

// New creates a filter for kinds. defaults supplies theme, width and height
// when neither block nor metadata set them; its Format is ignored. If
// logger is nil, log.Default() is used.
func New(kinds []Kind, defaults diagram.Params, logger *log.Logger) *Filter {
	if logger == nil {
		logger = log.Default()
	}
	return &Filter{kinds: kinds, defaults: defaults, logger: logger}
}

// Apply transforms every diagram block of doc for the given target format.
func (f *Filter) Apply(ctx context.Context, doc *pandoc.Document, target string) error {
	dc := NewContext(target, doc.Meta)
	return doc.Walk(func(el pandoc.Element) ([]any, bool, error) {
		return f.Transform(ctx, el, dc)
	})
}

// Transform returns the replacement for el, or false if el is not a diagram
// block. Rendering failures of the block are turned into a warning followed
// by the original block; only run-level failures are returned as errors.
func (f *Filter) Transform(ctx context.Context, el pandoc.Element, dc Context) ([]any, bool, error) {
	cb, ok := pandoc.ParseCodeBlock(el)
	if !ok {
		return nil, false, nil
	}
	kind, ok := f.match(cb.Attr)
	if !ok {
		return nil, false, nil
	}

	path, err := f.render(ctx, kind, cb, dc)
	if err != nil {
		if !errors.IsBlockLocal(err) {
			return nil, false, err
		}
		f.logger.Warn("could not convert diagram", "kind", kind.Name, "err", errors.UserMessage(err))
		observability.Render().OnFallback(ctx, kind.Name, err)
		return Fallback(kind, el), true, nil
	}
	return []any{ImageBlock(kind, path, cb.Attr)}, true, nil
}

func (f *Filter) render(ctx context.Context, kind Kind, cb pandoc.CodeBlock, dc Context) (string, error) {
	p, err := f.Resolve(kind, cb.Attr, dc)
	if err != nil {
		return "", err
	}
	return kind.Renderer.Render(ctx, cb.Text, p)
}

// Resolve computes the render parameters of a block.
func (f *Filter) Resolve(kind Kind, attr pandoc.Attr, dc Context) (diagram.Params, error) {
	p := f.defaults
	p.Format = FormatFor(dc.Target)

	if v := strings.TrimSpace(dc.Meta[kind.Name+"-theme"]); v != "" {
		p.Theme = v
	}
	if v, ok := attr.Get("theme"); ok && strings.TrimSpace(v) != "" {
		p.Theme = strings.TrimSpace(v)
	}

	var err error
	if p.Width, err = dimension(p.Width, "width", dc.Meta[kind.Name+"-width"], attr); err != nil {
		return p, err
	}
	if p.Height, err = dimension(p.Height, "height", dc.Meta[kind.Name+"-height"], attr); err != nil {
		return p, err
	}
	return p, nil
}

// dimension applies the metadata value and then the block attribute named
// key on top of def.
func dimension(def int, key, meta string, attr pandoc.Attr) (int, error) {
	n := def
	if strings.TrimSpace(meta) != "" {
		v, err := diagram.ParseDimension(key, meta)
		if err != nil {
			return 0, err
		}
		n = v
	}
	if raw, ok := attr.Get(key); ok {
		v, err := diagram.ParseDimension(key, raw)
		if err != nil {
			return 0, err
		}
		n = v
	}
	return n, nil
}

func (f *Filter) match(attr pandoc.Attr) (Kind, bool) {
	for _, k := range f.kinds {
		for _, c := range k.Classes {
			if attr.HasClass(c) {
				return k, true
			}
		}
	}
	return Kind{}, false
}

// ImageBlock builds the paragraph that replaces a rendered block. The image
// carries width=90% plus every block attribute except the render
// parameters; a block attribute with the same key as an earlier one
// replaces it.
func ImageBlock(kind Kind, path string, attr pandoc.Attr) pandoc.Element {
	kvs := []pandoc.KeyVal{{Key: "width", Value: DisplayWidth}}
	for _, kv := range attr.KeyVals {
		if slices.Contains(paramKeys, kv.Key) {
			continue
		}
		if i := slices.IndexFunc(kvs, func(e pandoc.KeyVal) bool { return e.Key == kv.Key }); i >= 0 {
			kvs[i].Value = kv.Value
			continue
		}
		kvs = append(kvs, kv)
	}

	img := pandoc.Image(
		pandoc.Attr{KeyVals: kvs},
		[]any{pandoc.Str(kind.Label + " Diagram")},
		filepath.ToSlash(path),
		"",
	)
	return pandoc.Para(img)
}

// Fallback returns the warning paragraph followed by the untouched original
// block.
func Fallback(kind Kind, original pandoc.Element) []any {
	warning := pandoc.Para(pandoc.Emph(pandoc.Str("Warning: Could not convert " + kind.Name + " diagram")))
	return []any{warning, original}
}
