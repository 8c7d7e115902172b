package pandoc

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// Element is a decoded pandoc element: {"t": tag, "c": contents}.
type Element = map[string]any

// Meta holds the document metadata keyed by field name. Values are decoded
// MetaValue elements (MetaString, MetaInlines, MetaMap, ...).
type Meta map[string]any

// Document is a pandoc JSON document.
type Document struct {
	APIVersion []int `json:"pandoc-api-version"`
	Meta       Meta  `json:"meta"`
	Blocks     []any `json:"blocks"`
}

// Decode reads a pandoc JSON document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode pandoc JSON")
	}
	if len(doc.APIVersion) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "missing pandoc-api-version")
	}
	if doc.Meta == nil {
		doc.Meta = Meta{}
	}
	return &doc, nil
}

// Encode writes doc to w as pandoc JSON.
func Encode(w io.Writer, doc *Document) error {
	out := *doc
	if out.Meta == nil {
		out.Meta = Meta{}
	}
	if out.Blocks == nil {
		out.Blocks = []any{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode pandoc JSON")
	}
	return nil
}

// Walk applies action to every listed element of the document body.
func (d *Document) Walk(action Action) error {
	blocks, err := walkList(d.Blocks, action)
	if err != nil {
		return err
	}
	d.Blocks = blocks
	return nil
}

// Tag returns the element tag of v, if v is an element.
func Tag(v any) (string, bool) {
	el, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	t, ok := el["t"].(string)
	return t, ok
}
