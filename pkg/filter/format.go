package filter

import "github.com/matzehuels/mermaid-filter/pkg/diagram"

var printTargets = map[string]bool{
	"latex":   true,
	"pdf":     true,
	"beamer":  true,
	"context": true,
}

var webTargets = map[string]bool{
	"html":     true,
	"html4":    true,
	"html5":    true,
	"revealjs": true,
	"slidy":    true,
	"slideous": true,
	"s5":       true,
	"dzslides": true,
}

// FormatFor maps a pandoc output format to an image format.
func FormatFor(target string) diagram.Format {
	switch {
	case printTargets[target]:
		return diagram.FormatPrint
	case webTargets[target]:
		return diagram.FormatVector
	default:
		return diagram.FormatRaster
	}
}
