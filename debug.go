package marquee

import (
	"log/slog"
	"time"
)

// debugStats holds per-layer timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	layer         string
	projectTime   time.Duration
	submitTime    time.Duration
	commandCount  int
	culledCount   int
	triangleCount int
}

// debugLog writes the stats for one layer at Debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("marquee: draw layer",
		slog.String("layer", stats.layer),
		slog.Duration("project", stats.projectTime),
		slog.Duration("submit", stats.submitTime),
		slog.Int("commands", stats.commandCount),
		slog.Int("culled", stats.culledCount),
		slog.Int("primitives", stats.triangleCount),
	)
}
