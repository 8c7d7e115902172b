package pandoc

import "strings"

// Strings flattens every metadata value to plain text.
func (m Meta) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = Stringify(v)
	}
	return out
}

// Text returns the plain text of the metadata field key.
func (m Meta) Text(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// Stringify extracts the text content of a metadata value, inline or block.
// Str and MetaString contribute their text, spaces and breaks contribute a
// single space, Code and Math contribute their literal. Everything else
// contributes the text of its children.
func Stringify(v any) string {
	var b strings.Builder
	stringify(&b, v)
	return b.String()
}

func stringify(b *strings.Builder, v any) {
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			stringify(b, item)
		}
	case map[string]any:
		t, _ := x["t"].(string)
		switch t {
		case "Str", "MetaString":
			s, _ := x["c"].(string)
			b.WriteString(s)
		case "Space", "SoftBreak", "LineBreak":
			b.WriteByte(' ')
		case "Code", "Math":
			if c, ok := x["c"].([]any); ok && len(c) == 2 {
				s, _ := c[1].(string)
				b.WriteString(s)
			}
		case "MetaBool":
			if on, _ := x["c"].(bool); on {
				b.WriteString("true")
			} else {
				b.WriteString("false")
			}
		case "RawInline", "RawBlock", "Note":
		default:
			stringify(b, x["c"])
		}
	}
}
