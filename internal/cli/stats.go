package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/mermaid-filter/pkg/observability"
)

// runStats counts diagram outcomes for the end-of-run summary.
type runStats struct {
	observability.NoopRenderHooks
	observability.NoopCacheHooks

	rendered int
	cached   int
	failed   int
}

func newRunStats() *runStats {
	return &runStats{}
}

func (s *runStats) OnRenderComplete(ctx context.Context, engine, format string, d time.Duration, err error) {
	if err == nil {
		s.rendered++
	}
}

func (s *runStats) OnFallback(ctx context.Context, engine string, err error) {
	s.failed++
}

func (s *runStats) OnCacheHit(ctx context.Context, keyType string) {
	s.cached++
}

func (s *runStats) total() int {
	return s.rendered + s.cached + s.failed
}

// summary formats the counts, e.g. "Converted 3 diagrams: 1 rendered, 2 cached".
func (s *runStats) summary() string {
	var parts []string
	if s.rendered > 0 {
		parts = append(parts, fmt.Sprintf("%d rendered", s.rendered))
	}
	if s.cached > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", s.cached))
	}
	if s.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.failed))
	}
	noun := "diagrams"
	if s.total() == 1 {
		noun = "diagram"
	}
	return fmt.Sprintf("Converted %d %s: %s", s.total(), noun, strings.Join(parts, ", "))
}
