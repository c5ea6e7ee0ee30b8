// Package logger provides slog attribute helpers shared across the toolkit.
package logger
