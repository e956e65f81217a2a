// Package cli implements the stockcards command-line interface.
//
// This package provides one command per card pipeline and commands for
// managing the cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - surge: Render the day's surge cards grouped by theme
//   - ranking: Render the change-rate ranking grouped by material
//   - answersheet: Render the answer sheet grouped by country
//   - cache: Manage the table and screenshot cache
//
// # Configuration
//
// Settings come from stockcards.toml (or --config); flags override the
// file. Secrets are read from the environment and from a .env file in the
// working directory.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every fetch, cache and HTTP event.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stockcards/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered surge cards (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports pipeline, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

// installHooks registers l as the receiver of all observability events.
func installHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnFetchStart(_ context.Context, pipeline, source string) {
	h.logger.Debug("fetch started", "pipeline", pipeline, "source", source)
}

func (h *logHooks) OnFetchComplete(_ context.Context, pipeline, source string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "pipeline", pipeline, "source", source, "duration", d, "error", err)
		return
	}
	h.logger.Debug("fetch complete", "pipeline", pipeline, "source", source, "rows", rows, "duration", d)
}

func (h *logHooks) OnGroupComplete(_ context.Context, pipeline string, groups, items, pages int) {
	h.logger.Debug("grouping complete", "pipeline", pipeline, "groups", groups, "items", items, "pages", pages)
}

func (h *logHooks) OnRenderStart(_ context.Context, pipeline string, formats []string) {
	h.logger.Debug("render started", "pipeline", pipeline, "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, pipeline string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "pipeline", pipeline, "duration", d, "error", err)
		return
	}
	h.logger.Debug("render complete", "pipeline", pipeline, "formats", formats, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}
