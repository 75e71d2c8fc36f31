package logbuf

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func fill(buf *Buffer, n int, base time.Time) {
	for i := 0; i < n; i++ {
		buf.Write(Entry{
			Time:    base.Add(time.Duration(i) * time.Second),
			Level:   "INFO",
			Message: "msg",
			Attrs:   map[string]any{"i": i},
		})
	}
}

func TestQuery(t *testing.T) {
	base := time.Now()

	tests := []struct {
		name  string
		size  int
		write int
		since time.Time
		limit int
		want  int
	}{
		{"all", 10, 4, time.Time{}, 0, 4},
		{"ring overwrites oldest", 3, 5, time.Time{}, 0, 3},
		{"since filters", 10, 5, base.Add(3 * time.Second), 0, 2},
		{"limit keeps newest", 10, 8, time.Time{}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := New(tt.size)
			fill(buf, tt.write, base)
			got := buf.Query(tt.since, slog.LevelDebug, tt.limit)
			if len(got) != tt.want {
				t.Fatalf("Query returned %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestQueryOrderAfterWrap(t *testing.T) {
	buf := New(3)
	fill(buf, 5, time.Now())

	got := buf.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 3 {
		t.Fatalf("got %d entries", len(got))
	}
	// Oldest first, survivors are writes 2..4.
	if got[0].Attrs["i"] != 2 || got[2].Attrs["i"] != 4 {
		t.Fatalf("wrong survivors: first=%v last=%v", got[0].Attrs["i"], got[2].Attrs["i"])
	}
}

func TestQueryMinLevel(t *testing.T) {
	buf := New(10)
	now := time.Now()
	for _, lvl := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		buf.Write(Entry{Time: now, Level: lvl, Message: lvl})
	}

	got := buf.Query(time.Time{}, slog.LevelWarn, 0)
	if len(got) != 2 {
		t.Fatalf("got %d entries at WARN+", len(got))
	}
	if got[0].Message != "WARN" || got[1].Message != "ERROR" {
		t.Fatalf("entries = %v", got)
	}
}

func TestHandlerTees(t *testing.T) {
	buf := New(10)
	logger := slog.New(NewHandler(slog.NewTextHandler(io.Discard, nil), buf))

	logger.Info("hello", "key", "value")
	logger.Warn("warning")

	got := buf.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 2 {
		t.Fatalf("got %d entries", len(got))
	}
	if got[0].Message != "hello" || got[0].Attrs["key"] != "value" {
		t.Fatalf("entry = %+v", got[0])
	}
	if got[1].Level != "WARN" {
		t.Fatalf("level = %q", got[1].Level)
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	buf := New(10)
	logger := slog.New(NewHandler(slog.NewTextHandler(io.Discard, nil), buf)).
		With("component", "sweep")

	logger.Info("msg")

	got := buf.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 1 || got[0].Attrs["component"] != "sweep" {
		t.Fatalf("entries = %+v", got)
	}
}

func TestHandlerCapturesBelowInnerLevel(t *testing.T) {
	buf := New(10)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := NewHandler(inner, buf)

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("handler must stay enabled for levels the inner handler drops")
	}

	logger := slog.New(h)
	logger.Debug("debug msg")
	logger.Info("info msg")
	logger.Warn("warn msg")

	if got := buf.Query(time.Time{}, slog.LevelDebug, 0); len(got) != 3 {
		t.Fatalf("buffer holds %d entries, want all 3", len(got))
	}
}
