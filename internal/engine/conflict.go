package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/model"
)

// Checker answers whether a resource already has a booking colliding with a
// proposed slot. One code path serves all three resource dimensions, so the
// parity overlap rule cannot drift between them.
//
// A found conflict is a normal result, never an error. Checker is stateless;
// callers needing check-then-create atomicity must serialize writes per
// (semester, day, period) bucket themselves.
type Checker struct {
	schedules ScheduleReader
	logger    *zap.Logger
}

func NewChecker(schedules ScheduleReader, logger *zap.Logger) *Checker {
	return &Checker{schedules: schedules, logger: logger}
}

// Conflicts counts existing bookings of the resource that collide with the
// slot: same semester, day and period, and an overlapping parity.
func (c *Checker) Conflicts(ctx context.Context, slot model.Slot, kind model.ResourceKind, resourceID int64) (int, error) {
	if err := validateSlot(slot, kind); err != nil {
		return 0, err
	}

	facts, err := c.schedules.FactsFor(ctx, slot.SemesterID, slot.Day, slot.PeriodID)
	if err != nil {
		return 0, fmt.Errorf("fetch schedule facts: %w", err)
	}

	count := 0
	for _, f := range facts {
		if !f.Parity.Valid() {
			return 0, fmt.Errorf("stored parity %q for lesson %d: %w", f.Parity, f.LessonID, ErrInvalidRecurrence)
		}
		if f.ResourceID(kind) == resourceID && f.Parity.Overlaps(slot.Parity) {
			count++
		}
	}

	c.logger.Debug("conflict check",
		zap.Int64("semester_id", slot.SemesterID),
		zap.String("day", slot.Day.String()),
		zap.Int64("period_id", slot.PeriodID),
		zap.String("parity", string(slot.Parity)),
		zap.String("kind", string(kind)),
		zap.Int64("resource_id", resourceID),
		zap.Int("conflicts", count),
	)

	return count, nil
}

// HasConflict reports whether at least one colliding booking exists. Zero
// collisions is the precondition for persisting a new schedule row for the
// resource at that slot.
func (c *Checker) HasConflict(ctx context.Context, slot model.Slot, kind model.ResourceKind, resourceID int64) (bool, error) {
	n, err := c.Conflicts(ctx, slot, kind, resourceID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
