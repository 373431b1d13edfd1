package securestore

import "log/slog"

// DefaultNamespace is the namespace used when none is configured.
const DefaultNamespace = "app"

// keyEntrySuffix is appended to "<namespace>_" to name the key entry.
const keyEntrySuffix = "encryption_key"

// config holds configuration for a SecureStore.
type config struct {
	namespace   string
	diagnostics DiagnosticSink
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{namespace: DefaultNamespace}
}

// Option configures a SecureStore.
type Option func(*config)

// WithNamespace sets the namespace that scopes the encryption key entry.
// Default: "app"
func WithNamespace(namespace string) Option {
	return func(c *config) {
		c.namespace = namespace
	}
}

// WithDiagnostics sets the sink that receives decryption failures.
// It takes precedence over WithLogger.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(c *config) {
		c.diagnostics = sink
	}
}

// WithLogger reports decryption failures to logger through an SlogSink.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// sink resolves the configured diagnostic sink.
func (c config) sink() DiagnosticSink {
	if c.diagnostics != nil {
		return c.diagnostics
	}
	return NewSlogSink(c.logger, c.namespace)
}
