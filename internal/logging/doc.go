// Package logging builds the slog loggers used across worldfeed. Output is
// either a human-oriented console format or line-delimited JSON, fanned out
// to stdout/stderr and the log file under the configured log directory.
package logging
