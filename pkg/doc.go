// Package pkg provides the libraries behind the mermaid-filter pandoc filter.
//
// # Overview
//
// mermaid-filter reads a pandoc document, replaces diagram code blocks with
// rendered images and writes the document back. The pkg directory is
// organized as follows:
//
//  1. [pandoc] - The pandoc JSON document: decoding, encoding, walking
//  2. [filter] - Block selection, parameter resolution, replacement
//  3. [diagram] - Render engines (mmdc, graphviz) and cached rendering
//  4. [cache] - Content-addressed blob stores (file, memory, redis, tiered)
//  5. [config], [errors], [observability], [buildinfo] - Supporting packages
//
// # Architecture
//
// The data flow for one document:
//
//	pandoc JSON on stdin
//	         ↓
//	    [pandoc] package (decode, walk blocks)
//	         ↓
//	    [filter] package (match code block, resolve theme/width/height)
//	         ↓
//	    [diagram] package (cache lookup, engine render on miss)
//	         ↓
//	    [cache] package (generated_diagrams/<engine>_<digest>.<ext>)
//	         ↓
//	pandoc JSON on stdout
//
// # Quick Start
//
// Convert a decoded document for HTML output:
//
//	store := cache.NewFileStore("")
//	engine := &diagram.MermaidEngine{}
//	kinds := []filter.Kind{{
//	    Name:     "mermaid",
//	    Label:    "Mermaid",
//	    Classes:  []string{"mermaid"},
//	    Renderer: diagram.NewRenderer(store, engine, nil),
//	}}
//
//	doc, _ := pandoc.Decode(os.Stdin)
//	f := filter.New(kinds, diagram.DefaultParams(), nil)
//	if err := f.Apply(ctx, doc, "html"); err != nil {
//	    return err
//	}
//	pandoc.Encode(os.Stdout, doc)
//
// # Errors
//
// Errors carry a [errors.Code]. Codes for a single block (renderer missing,
// renderer failed, invalid parameter) turn into a warning in the document;
// every other code aborts the conversion.
//
// # Testing
//
//	go test ./...                          # All tests
//	go test ./pkg/filter/...               # Specific package
//
// Tests that exercise mmdc use a stand-in script and skip on Windows.
//
// [pandoc]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/pandoc
// [filter]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/filter
// [diagram]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/diagram
// [cache]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/buildinfo
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/mermaid-filter/pkg/errors#Code
package pkg
