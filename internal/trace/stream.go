package trace

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// newLogger builds the slog logger that renders events in format.
func newLogger(w io.Writer, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func eventLevel(ev *Event) slog.Level {
	switch ev.Scope {
	case ScopeDriver, ScopePass:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func eventAttrs(ev *Event) []slog.Attr {
	attrs := []slog.Attr{
		slog.Uint64("seq", ev.Seq),
		slog.String("kind", ev.Kind.String()),
		slog.String("scope", ev.Scope.String()),
		slog.Uint64("span", ev.SpanID),
	}
	if ev.ParentID != 0 {
		attrs = append(attrs, slog.Uint64("parent", ev.ParentID))
	}
	if ev.Kind == KindSpanEnd {
		attrs = append(attrs, slog.Duration("elapsed", ev.Elapsed))
	}
	if ev.Detail != "" {
		attrs = append(attrs, slog.String("detail", ev.Detail))
	}
	for k, v := range ev.Extra {
		attrs = append(attrs, slog.String(k, v))
	}
	return attrs
}

func logEvent(l *slog.Logger, ev *Event) {
	l.LogAttrs(context.Background(), eventLevel(ev), ev.Name, eventAttrs(ev)...)
}

// StreamTracer writes events immediately through a slog handler.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
	level  Level
}

// NewStreamTracer creates a new StreamTracer. A non-empty runID is attached
// to every record.
func NewStreamTracer(w io.Writer, level Level, format Format, runID string) *StreamTracer {
	logger := newLogger(w, format)
	if runID != "" {
		logger = logger.With(slog.String("run", runID))
	}
	return &StreamTracer{w: w, logger: logger, level: level}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	logEvent(t.logger, ev)
}

// Flush calls the writer's Flush method when it has one.
func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer. Standard streams are left open.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level {
	return t.level
}

func (t *StreamTracer) Enabled() bool {
	return t.level > LevelOff
}
