// Package logger configures the process-wide slog JSON logger and carries
// request-scoped loggers through context.Context, so trace IDs added by the
// HTTP middleware follow a request into the service and task layers.
package logger
