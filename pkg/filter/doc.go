// Package filter replaces diagram code blocks in a pandoc document with
// rendered images.
//
// A code block qualifies when one of its classes belongs to a registered
// [Kind] (for example "mermaid"). Its render parameters are resolved with
// the following precedence, highest first, independently for theme, width
// and height:
//
//  1. block attributes: theme, width, height
//  2. document metadata: <kind>-theme, <kind>-width, <kind>-height
//  3. filter defaults (from configuration)
//  4. built-in defaults: theme "default", 800x600
//
// The image format follows the target output: print targets get PDF, web
// and slide targets get SVG, everything else PNG.
//
// A block that renders becomes a paragraph holding one image. A block that
// cannot be rendered, including one with a malformed width or height, is
// kept and preceded by an emphasized warning, so no diagram source is lost.
// Only infrastructure failures (an unwritable cache, cancellation) abort the
// document.
package filter
