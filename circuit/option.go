package circuit

import (
	"log/slog"

	"github.com/viant/provenance/config"
	"github.com/viant/provenance/lineage"
)

// Option configures a circuit
type Option func(*Circuit)

// WithLogger sets the circuit logger, also used by the lineage graphs it builds
func WithLogger(logger *slog.Logger) Option {
	return func(c *Circuit) {
		c.logger = logger
	}
}

// WithMaxDepth bounds how many functions a trace may walk through
func WithMaxDepth(depth int) Option {
	return func(c *Circuit) {
		c.maxDepth = depth
	}
}

// WithCheckDuplicates makes traced graphs suppress duplicate edges
func WithCheckDuplicates(check bool) Option {
	return func(c *Circuit) {
		c.checkDuplicates = check
	}
}

// WithParallelism bounds how many traces TraceAll runs at once
func WithParallelism(n int) Option {
	return func(c *Circuit) {
		c.parallelism = n
	}
}

// WithExporter registers an exporter receiving the simplified explanation of every successful trace
func WithExporter(exporter lineage.Exporter) Option {
	return func(c *Circuit) {
		c.exporter = exporter
	}
}

// WithConfig applies engine settings
func WithConfig(cfg *config.Config) Option {
	return func(c *Circuit) {
		if cfg == nil {
			return
		}
		c.maxDepth = cfg.MaxDepth
		c.checkDuplicates = cfg.CheckDuplicates
		if cfg.Parallelism > 0 {
			c.parallelism = cfg.Parallelism
		}
		if cfg.ExportURL != "" {
			c.exporter = lineage.NewURLExporter(cfg.ExportURL)
		}
	}
}
