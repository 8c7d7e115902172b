package diagram

import "context"

// Engine renders diagram source into image bytes.
type Engine interface {
	// Name identifies the engine. It prefixes cache entry names, so two
	// engines never share an entry.
	Name() string

	// Render produces an image in p.Format.
	Render(ctx context.Context, source string, p Params) ([]byte, error)
}
