// Package tat derives day-granularity turnaround durations from finding
// timestamps. Everything here is a pure function of its inputs; the overdue
// threshold is always passed explicitly rather than held as shared state.
package tat

import (
	"math"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// DefaultThresholdDays is the process-wide overdue threshold applied when a
// caller does not configure one.
const DefaultThresholdDays = 5

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// DaysRemaining returns whole days until the deadline, floored at zero once
// the deadline has passed.
func DaysRemaining(deadline, now time.Time) int {
	days := ceilDays(deadline.Sub(now))
	if days < 0 {
		return 0
	}
	return days
}

// ResponseDays returns whole days between a finding's creation and its first
// action-plan response. The value is deliberately not floored: a response
// stamped before creation yields a zero or negative duration and is reported
// as such.
func ResponseDays(createdAt, responseAt time.Time) int {
	return ceilDays(responseAt.Sub(createdAt))
}

// IsOverdue reports whether a still-open finding has aged past the threshold.
func IsOverdue(f domain.Finding, thresholdDays int, now time.Time) bool {
	if f.Status.IsClosed() {
		return false
	}
	return ceilDays(now.Sub(f.CreatedAt)) > thresholdDays
}
