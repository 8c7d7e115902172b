package diagram

import (
	"strconv"
	"strings"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// Format is the kind of image produced for a target document.
type Format int

const (
	// FormatRaster produces PNG. It is the fallback for unknown targets.
	FormatRaster Format = iota
	// FormatVector produces SVG for web and slide targets.
	FormatVector
	// FormatPrint produces PDF for print targets.
	FormatPrint
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatVector:
		return "svg"
	case FormatPrint:
		return "pdf"
	default:
		return "png"
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatVector:
		return "vector"
	case FormatPrint:
		return "print"
	default:
		return "raster"
	}
}

// Built-in parameter defaults.
const (
	DefaultTheme  = "default"
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Params are the resolved settings for one render.
type Params struct {
	Format Format
	Width  int
	Height int
	Theme  string
}

// DefaultParams returns raster output at 800x600 with the default theme.
func DefaultParams() Params {
	return Params{
		Format: FormatRaster,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Theme:  DefaultTheme,
	}
}

// Validate checks that the dimensions are positive and the theme is set.
func (p Params) Validate() error {
	if p.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %d", p.Width)
	}
	if p.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "height must be positive, got %d", p.Height)
	}
	if p.Theme == "" {
		return errors.New(errors.ErrCodeInvalidParameter, "theme must not be empty")
	}
	return nil
}

// ParseDimension parses a width or height value. Surrounding whitespace is
// ignored; anything other than a positive decimal integer is an
// INVALID_PARAMETER error naming the attribute.
func ParseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidParameter, err, "%s %q is not an integer", name, value)
	}
	if n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidParameter, "%s must be positive, got %d", name, n)
	}
	return n, nil
}
