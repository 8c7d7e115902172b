// Package diagram turns diagram source text into image files.
//
// A [Renderer] pairs an [Engine] with a content-addressed [cache.Store].
// Rendering the same source with the same theme, width, height and format
// always yields the same path, and the engine only runs the first time:
//
//	store := cache.NewFileStore("generated_diagrams")
//	r := diagram.NewRenderer(store, &diagram.MermaidEngine{}, logger)
//	path, err := r.Render(ctx, "graph TD; A-->B", diagram.Params{
//	    Format: diagram.FormatVector,
//	    Width:  800,
//	    Height: 600,
//	    Theme:  "default",
//	})
//	// path == "generated_diagrams/mermaid_<sha256>.svg"
//
// # Engines
//
//   - [MermaidEngine] runs the mermaid CLI (mmdc) as a subprocess.
//   - [GraphvizEngine] renders DOT in-process with go-graphviz and converts
//     SVG to PDF with rsvg-convert for print output.
//
// Engine errors carry codes from [errors]: RENDERER_MISSING when an
// executable is not installed, RENDERER_FAILED when it ran and failed, and
// FILESYSTEM when scratch files cannot be written.
package diagram
