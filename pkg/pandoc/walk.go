package pandoc

// Action inspects one element found in a list. It returns the elements that
// replace it and true, or false to keep the element as is. A non-nil error
// stops the walk.
type Action func(el Element) ([]any, bool, error)

// Walk applies action to every element that appears in a list anywhere
// inside v and returns the rewritten value. Lists are rebuilt, objects are
// updated in place. Order is preserved: replacements are spliced in at the
// position of the element they replace.
func Walk(v any, action Action) (any, error) {
	switch x := v.(type) {
	case []any:
		return walkList(x, action)
	case map[string]any:
		for k, child := range x {
			w, err := Walk(child, action)
			if err != nil {
				return nil, err
			}
			x[k] = w
		}
		return x, nil
	default:
		return v, nil
	}
}

func walkList(list []any, action Action) ([]any, error) {
	out := make([]any, 0, len(list))
	for _, item := range list {
		if el, ok := item.(map[string]any); ok {
			if _, tagged := el["t"].(string); tagged {
				repl, changed, err := action(el)
				if err != nil {
					return nil, err
				}
				if changed {
					for _, r := range repl {
						w, err := Walk(r, action)
						if err != nil {
							return nil, err
						}
						out = append(out, w)
					}
					continue
				}
			}
		}
		w, err := Walk(item, action)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
