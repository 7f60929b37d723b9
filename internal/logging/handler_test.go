package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/auxility/site/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "logging-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *sql.DB) []store.Event {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*slog.Logger)
		wantCount int
		wantLevel string
	}{
		{"error", func(l *slog.Logger) { l.Error("content fetch failed", "key", "Hero") }, 1, store.EventLevelError},
		{"warn", func(l *slog.Logger) { l.Warn("redis unreachable") }, 1, store.EventLevelWarning},
		{"info not captured", func(l *slog.Logger) { l.Info("server started", "port", 8080) }, 0, ""},
		{"debug not captured", func(l *slog.Logger) { l.Debug("discarding stale fetch result") }, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			tt.log(slog.New(NewEventLogHandler(discardHandler{}, db)))

			events := listEvents(t, db)
			if len(events) != tt.wantCount {
				t.Fatalf("expected %d events, got %d", tt.wantCount, len(events))
			}
			if tt.wantCount > 0 && events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))

	logger.Info("server started", "port", 8080)

	if events := listEvents(t, db); len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestEventLogHandler_Category(t *testing.T) {
	tests := []struct {
		msg   string
		attrs []any
		want  string
	}{
		{"something odd", []any{"category", "custom"}, "custom"},
		{"contact delivery failed", nil, store.EventCategoryContact},
		{"content fetch failed", nil, store.EventCategoryContent},
		{"redis unreachable, using memory cache", nil, store.EventCategoryCache},
		{"invalid config value", nil, store.EventCategoryConfig},
		{"shutdown timed out", nil, store.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			db := testDB(t)
			slog.New(NewEventLogHandler(discardHandler{}, db)).Warn(tt.msg, tt.attrs...)

			events := listEvents(t, db)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).
		With("section", "hero").
		WithGroup("req")

	logger.Error("content fetch failed", "error", `bad "quote"`)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v (%s)", err, events[0].Metadata)
	}
	if meta["section"] != "hero" {
		t.Errorf("section = %q", meta["section"])
	}
	if meta["req.error"] != `bad "quote"` {
		t.Errorf("req.error = %q", meta["req.error"])
	}
	if events[0].Category != store.EventCategoryContent {
		t.Errorf("Category = %q", events[0].Category)
	}
}

func TestEventLogHandler_EmptyMetadata(t *testing.T) {
	db := testDB(t)
	slog.New(NewEventLogHandler(discardHandler{}, db)).Warn("bare warning")

	events := listEvents(t, db)
	if len(events) != 1 || events[0].Metadata != "{}" {
		t.Errorf("unexpected events %+v", events)
	}
}
