package pandoc

import (
	"slices"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// KeyVal is one attribute of an element.
type KeyVal struct {
	Key   string
	Value string
}

// Attr is pandoc's (identifier, classes, key-value pairs) triple.
type Attr struct {
	ID      string
	Classes []string
	KeyVals []KeyVal
}

// HasClass reports whether class is one of the attribute classes.
func (a Attr) HasClass(class string) bool {
	return slices.Contains(a.Classes, class)
}

// Get returns the value of key. When a key is repeated the last value wins.
func (a Attr) Get(key string) (string, bool) {
	for i := len(a.KeyVals) - 1; i >= 0; i-- {
		if a.KeyVals[i].Key == key {
			return a.KeyVals[i].Value, true
		}
	}
	return "", false
}

// JSON returns the attribute in pandoc's JSON form.
func (a Attr) JSON() []any {
	classes := make([]any, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = c
	}
	kvs := make([]any, len(a.KeyVals))
	for i, kv := range a.KeyVals {
		kvs[i] = []any{kv.Key, kv.Value}
	}
	return []any{a.ID, classes, kvs}
}

// ParseAttr reads an attribute triple.
func ParseAttr(v any) (Attr, error) {
	triple, ok := v.([]any)
	if !ok || len(triple) != 3 {
		return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute is not a triple")
	}

	var a Attr
	if a.ID, ok = triple[0].(string); !ok {
		return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute identifier is not a string")
	}

	classes, ok := triple[1].([]any)
	if !ok {
		return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute classes are not a list")
	}
	for _, c := range classes {
		s, ok := c.(string)
		if !ok {
			return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute class is not a string")
		}
		a.Classes = append(a.Classes, s)
	}

	kvs, ok := triple[2].([]any)
	if !ok {
		return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute pairs are not a list")
	}
	for _, kv := range kvs {
		pair, ok := kv.([]any)
		if !ok || len(pair) != 2 {
			return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute pair is malformed")
		}
		k, kok := pair[0].(string)
		val, vok := pair[1].(string)
		if !kok || !vok {
			return Attr{}, errors.New(errors.ErrCodeInvalidDocument, "attribute pair is not two strings")
		}
		a.KeyVals = append(a.KeyVals, KeyVal{Key: k, Value: val})
	}
	return a, nil
}

// CodeBlock is a typed view of a CodeBlock element.
type CodeBlock struct {
	Attr Attr
	Text string
}

// ParseCodeBlock returns the code block view of el, or false if el is not a
// well-formed CodeBlock.
func ParseCodeBlock(el Element) (CodeBlock, bool) {
	if t, _ := el["t"].(string); t != "CodeBlock" {
		return CodeBlock{}, false
	}
	c, ok := el["c"].([]any)
	if !ok || len(c) != 2 {
		return CodeBlock{}, false
	}
	attr, err := ParseAttr(c[0])
	if err != nil {
		return CodeBlock{}, false
	}
	text, ok := c[1].(string)
	if !ok {
		return CodeBlock{}, false
	}
	return CodeBlock{Attr: attr, Text: text}, true
}

// =============================================================================
// Constructors
// =============================================================================

// Str builds a Str inline.
func Str(s string) Element {
	return Element{"t": "Str", "c": s}
}

// Space builds a Space inline.
func Space() Element {
	return Element{"t": "Space"}
}

// Emph builds an Emph inline around inlines.
func Emph(inlines ...any) Element {
	return Element{"t": "Emph", "c": list(inlines)}
}

// Para builds a Para block around inlines.
func Para(inlines ...any) Element {
	return Element{"t": "Para", "c": list(inlines)}
}

// Image builds an Image inline.
func Image(attr Attr, alt []any, url, title string) Element {
	return Element{"t": "Image", "c": []any{attr.JSON(), list(alt), []any{url, title}}}
}

// NewCodeBlock builds a CodeBlock block.
func NewCodeBlock(attr Attr, text string) Element {
	return Element{"t": "CodeBlock", "c": []any{attr.JSON(), text}}
}

func list(items []any) []any {
	if items == nil {
		return []any{}
	}
	return items
}
