package diagram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// pixelsPerInch converts pixel dimensions to graphviz's inch-based size.
const pixelsPerInch = 96.0

// GraphvizEngine renders DOT source in-process.
//
// Vector output is graphviz SVG, raster output is PNG at twice the nominal
// resolution, and print output is the SVG converted to PDF with
// rsvg-convert. Width and height bound the drawing via the graph size
// attribute. The "dark" theme switches to a light-on-dark palette; other
// themes use graphviz defaults.
type GraphvizEngine struct {
	Logger *log.Logger
}

// Name returns "graphviz".
func (e *GraphvizEngine) Name() string { return "graphviz" }

// Render lays out and draws source.
func (e *GraphvizEngine) Render(ctx context.Context, source string, p Params) ([]byte, error) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(withGraphAttrs(source, p)))
	if err == nil && g == nil {
		err = fmt.Errorf("no graph in source")
	}
	if err != nil {
		logger.Error("Error parsing graphviz diagram", "err", err)
		return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "parse DOT")
	}
	defer g.Close()

	format := graphviz.SVG
	if p.Format == FormatRaster {
		format = graphviz.PNG
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		logger.Error("Error generating graphviz diagram", "err", err)
		return nil, errors.Wrap(errors.ErrCodeRendererFailed, err, "render DOT")
	}

	if p.Format == FormatPrint {
		return svgToPDF(ctx, logger, buf.Bytes())
	}
	return buf.Bytes(), nil
}

// withGraphAttrs inserts graph-level attribute statements right after the
// opening brace of the graph body. Attributes the source sets later in the
// body override them.
func withGraphAttrs(source string, p Params) string {
	open := strings.IndexByte(source, '{')
	if open < 0 {
		return source
	}

	var attrs strings.Builder
	fmt.Fprintf(&attrs, "\n  graph [size=\"%.2f,%.2f\"", float64(p.Width)/pixelsPerInch, float64(p.Height)/pixelsPerInch)
	if p.Format == FormatRaster {
		fmt.Fprintf(&attrs, ", dpi=%d", int(pixelsPerInch)*mermaidScale)
	}
	if p.Theme == "dark" {
		attrs.WriteString(`, bgcolor="#1e1e1e", fontcolor="#e0e0e0"];` + "\n")
		attrs.WriteString(`  node [color="#e0e0e0", fontcolor="#e0e0e0"];` + "\n")
		attrs.WriteString(`  edge [color="#e0e0e0", fontcolor="#e0e0e0"];`)
	} else {
		attrs.WriteString("];")
	}
	attrs.WriteString("\n")

	return source[:open+1] + attrs.String() + source[open+1:]
}

// Ensure GraphvizEngine implements Engine.
var _ Engine = (*GraphvizEngine)(nil)
