package framevault

import (
	"log/slog"

	"github.com/arvok-systems/framevault/blobstore"
	"github.com/arvok-systems/framevault/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	mirror           blobstore.BlobStore
	mirrorPrefix     string
}

// Option configures a Store at construction.
//
// Today options primarily exist to avoid exploding the constructor's
// argument list with rarely-changed knobs (metrics, logging, remote
// mirroring).
//
// Breaking changes are expected while this module is pre-release.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &framevault.BasicMetricsCollector{}
//	store, _ := framevault.New(idx, embed, enc, dec, framevault.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Ingests: %d, Avg latency: %dns\n", stats.IngestCount, stats.IngestAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations. Pass nil to
// disable logging.
//
// Example with JSON logging:
//
//	logger := framevault.NewJSONLogger(slog.LevelInfo)
//	store, _ := framevault.New(idx, embed, enc, dec, framevault.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithController records a resource.Controller in the Store's options.
// Store itself does not pass it on: the encode coordinator, the decode
// coordinator and any cache use only the controllers given to them at
// their own construction.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithMirror configures a remote blobstore.BlobStore that built video
// containers are copied to (under prefix) after a successful local Build.
// Mirroring is best-effort relative to the local write: the local path is
// always the durable result of Build; a mirroring failure is reported but
// never undoes the local write (spec.md §4.7).
func WithMirror(store blobstore.BlobStore, prefix string) Option {
	return func(o *options) {
		o.mirror = store
		o.mirrorPrefix = prefix
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
