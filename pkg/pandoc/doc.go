// Package pandoc reads, rewrites and writes pandoc's JSON document model.
//
// Pandoc hands filters the document on stdin as JSON and reads the filtered
// document back from stdout. Elements are objects of the form
// {"t": "Tag", "c": contents}. This package keeps elements in their decoded
// generic form, so element types it does not know about (and numbers, which
// are decoded as [encoding/json.Number]) survive a round trip untouched.
// Typed views are provided only for what the filter inspects: code blocks,
// attributes and metadata text.
//
// # Walking
//
// [Walk] visits every element that appears in a list (blocks and inlines)
// and lets an [Action] replace it with zero or more elements. Replacement
// elements are not passed to the action again, only their children are.
//
//	doc, err := pandoc.Decode(os.Stdin)
//	if err != nil {
//	    return err
//	}
//	err = doc.Walk(func(el pandoc.Element) ([]any, bool, error) {
//	    cb, ok := pandoc.ParseCodeBlock(el)
//	    if !ok || !cb.Attr.HasClass("mermaid") {
//	        return nil, false, nil
//	    }
//	    return []any{pandoc.Para(pandoc.Str("diagram"))}, true, nil
//	})
package pandoc
