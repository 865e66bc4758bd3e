// Package slog provides logging decorators for the ingest services.
package slog
