// Package cli implements the rbcheck command-line interface.
//
// This package provides commands for verifying drawn graphs as red-black
// trees, simulating insertions, editing canvas snapshots, and managing the
// canvas store and the tree cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - verify: Check a canvas snapshot and report why it is or is not a tree
//   - insert: Insert a label into a verified canvas and print the action log
//   - render: Draw a canvas or its verified tree as SVG, PNG or DOT
//   - canvas: Edit a snapshot file (add, color, label, link, delete nodes)
//   - store: Save and fetch canvases by id
//   - cache: Manage the tree cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and library events reach the log through
// observability hooks registered at startup.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rbcheck/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Verified 42 nodes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks forwards library events to the logger at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks for every event category.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetEngineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnVerifyStart(_ context.Context, liveNodes int) {
	h.logger.Debug("verify start", "nodes", liveNodes)
}

func (h logHooks) OnVerifyComplete(_ context.Context, reason, stage string, visited int, d time.Duration) {
	h.logger.Debug("verify done", "reason", reason, "stage", stage, "visited", visited, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnInsertComplete(_ context.Context, label int, actions []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("insert failed", "label", label, "err", err)
		return
	}
	h.logger.Debug("insert done", "label", label, "steps", len(actions), "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) OnStoreOp(_ context.Context, backend, op string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("store op failed", "backend", backend, "op", op, "err", err)
		return
	}
	h.logger.Debug("store op", "backend", backend, "op", op, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnRequest(context.Context, string, string) {}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}
