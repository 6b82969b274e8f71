// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON and text output formats
//   - Request ID and trace ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
//	logger.Info("application started", slog.String("addr", ":8080"))
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, logger).Info("processing request")
//	}
package logging
