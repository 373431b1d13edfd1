package securestore

import (
	"context"
	"errors"
	"log/slog"
)

// DiagnosticSink receives decryption failures that are not returned to the
// caller. Implementations must not block for long; they run inline with
// the read that failed.
type DiagnosticSink interface {
	ReportDecryptionFailure(ctx context.Context, err error)
}

// DiagnosticFunc adapts a function to DiagnosticSink.
type DiagnosticFunc func(ctx context.Context, err error)

// ReportDecryptionFailure calls f.
func (f DiagnosticFunc) ReportDecryptionFailure(ctx context.Context, err error) {
	f(ctx, err)
}

// NopSink discards all reports.
type NopSink struct{}

// ReportDecryptionFailure discards the report.
func (NopSink) ReportDecryptionFailure(context.Context, error) {}

// SlogSink logs decryption failures at error level.
type SlogSink struct {
	logger    *slog.Logger
	namespace string
}

// NewSlogSink creates a sink that logs to logger.
// If logger is nil, slog.Default() is used.
func NewSlogSink(logger *slog.Logger, namespace string) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger, namespace: namespace}
}

// ReportDecryptionFailure logs err with its stage and key fingerprint.
func (s *SlogSink) ReportDecryptionFailure(ctx context.Context, err error) {
	attrs := []any{"namespace", s.namespace, "error", err}

	var decErr *DecryptionError
	if errors.As(err, &decErr) {
		attrs = append(attrs, "stage", decErr.Stage)
		if decErr.KeyFingerprint != "" {
			attrs = append(attrs, "key_fingerprint", decErr.KeyFingerprint)
		}
	}
	s.logger.ErrorContext(ctx, "decryption error", attrs...)
}
