// Package audit records mutation trails. The sink is fire-and-forget:
// recording failures are logged and never block or fail the operation that
// produced the entry.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Entry captures one audited mutation.
type Entry struct {
	Action    string
	TableName string
	RecordID  string
	OldData   string
	NewData   string
	CreatedAt time.Time
}

// Sink accepts audit entries.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}

// NoopSink discards all entries.
type NoopSink struct{}

func (NoopSink) Record(context.Context, Entry) error { return nil }

// BestEffort wraps a sink so recording failures are logged instead of
// propagated. Services use this wrapper exclusively.
type BestEffort struct {
	Sink   Sink
	Logger *slog.Logger
}

func (b BestEffort) Record(ctx context.Context, e Entry) {
	if b.Sink == nil {
		return
	}
	if err := b.Sink.Record(ctx, e); err != nil && b.Logger != nil {
		b.Logger.WarnContext(ctx, "audit record failed",
			"action", e.Action,
			"table", e.TableName,
			"record_id", e.RecordID,
			"error", err.Error(),
		)
	}
}
