package shuttle

import (
	"context"

	"github.com/arjunsk/shuttle/internal/logctx"
)

// LoggingHooks returns a Hooks value that logs every node and edge at
// debug level and every rejected cycle at warn level, through the logger
// embedded in ctx (or slog.Default() if ctx carries none). It is meant to
// be merged with any domain-specific hooks via Hooks.Merge.
func LoggingHooks(ctx context.Context) Hooks {
	logger := logctx.FromContext(ctx)
	return Hooks{
		OnNode: func(_ *Graph, n Node) {
			logger.Debug("shuttle: node recorded", "id", n.ID, "name", n.Name)
		},
		OnEdge: func(_ *Graph, e Edge) {
			logger.Debug("shuttle: edge recorded", "from", e.From, "to", e.To, "kind", e.Kind, "label", e.Label)
		},
		OnCycle: func(c *DependencyCycle) {
			logger.Warn("shuttle: edge rejected, would close a cycle", "from", c.From, "to", c.To, "label", c.Label)
		},
	}
}
