package validate

import (
	"github.com/rs/zerolog"

	"secnode_validator/internal/rules"
	"secnode_validator/telemetry"
)

// Option customises a Runner.
type Option func(*Runner)

// WithLogger attaches a logger used for per-rule diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithCollector attaches a telemetry collector. Defaults to a no-op.
func WithCollector(collector telemetry.Collector) Option {
	return func(r *Runner) {
		if collector != nil {
			r.collector = collector
		}
	}
}

// WithCatalog replaces the default rule catalog. Intended for tests that
// exercise a single rule through the full run path.
func WithCatalog(catalog []rules.Rule) Option {
	return func(r *Runner) {
		r.catalog = catalog
	}
}
