package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
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
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Generated 3 variants (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks forwards pipeline events to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnOperatorStart(_ context.Context, op string) {
	h.logger.Debug("running operator", "op", op)
}

func (h *logHooks) OnOperatorComplete(_ context.Context, op string, affected int, d time.Duration) {
	h.logger.Debug("operator finished", "op", op, "affected", affected, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnElementFailure(_ context.Context, op string, err error) {
	h.logger.Debug("element skipped", "op", op, "err", err)
}
