// Package notify is the notification sink the lifecycle engines report into
// after each successful or rejected command. Sinks must never block the
// caller.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

type Sink interface {
	Notify(message string, severity domain.NotificationSeverity)
}

// Discard swallows everything. Useful in tests and for the CLI reporter.
type Discard struct{}

func (Discard) Notify(string, domain.NotificationSeverity) {}

// Feed keeps the most recent notifications in memory, newest first, and
// mirrors each one to the logger.
type Feed struct {
	logger zerolog.Logger
	limit  int

	mu      sync.Mutex
	entries []domain.Notification
}

func NewFeed(logger zerolog.Logger, limit int) *Feed {
	if limit <= 0 {
		limit = 100
	}
	return &Feed{logger: logger, limit: limit}
}

func (f *Feed) Notify(message string, severity domain.NotificationSeverity) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now(),
	}

	f.mu.Lock()
	f.entries = append([]domain.Notification{n}, f.entries...)
	if len(f.entries) > f.limit {
		f.entries = f.entries[:f.limit]
	}
	f.mu.Unlock()

	f.logger.Info().
		Str("severity", string(severity)).
		Msg(message)
}

// Recent returns the buffered notifications, newest first.
func (f *Feed) Recent() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
