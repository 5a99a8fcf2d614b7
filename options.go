package digitknn

import (
	"log/slog"

	"github.com/hupe1980/digitknn/blobstore"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	store            blobstore.BlobStore
}

// Option configures Run.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &digitknn.BasicMetricsCollector{}
//	report, _ := digitknn.Run(ctx, cfg, digitknn.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Classifications: %d, Avg latency: %dns\n", stats.ClassifyCount, stats.ClassifyAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := digitknn.NewJSONLogger(slog.LevelInfo)
//	report, _ := digitknn.Run(ctx, cfg, digitknn.WithLogger(logger))
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

// WithStore reads the dataset and the query from store instead of the
// source named in the Config.
func WithStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
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
