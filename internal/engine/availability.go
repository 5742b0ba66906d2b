package engine

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/model"
)

// AnnotatedResource is one entry of a combined availability listing.
type AnnotatedResource struct {
	Resource  model.Resource `json:"resource"`
	Available bool           `json:"available"`
}

// Calculator partitions the enabled universe of a resource kind into
// available and unavailable sets for a fixed slot.
type Calculator struct {
	schedules ScheduleReader
	resources ResourceReader
	logger    *zap.Logger
}

func NewCalculator(schedules ScheduleReader, resources ResourceReader, logger *zap.Logger) *Calculator {
	return &Calculator{schedules: schedules, resources: resources, logger: logger}
}

// occupiedSet collects ids of resources along the given dimension whose
// existing bookings at the slot's coordinate overlap the slot's parity.
func (c *Calculator) occupiedSet(ctx context.Context, slot model.Slot, kind model.ResourceKind) (map[int64]struct{}, error) {
	facts, err := c.schedules.FactsFor(ctx, slot.SemesterID, slot.Day, slot.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule facts: %w", err)
	}

	occupied := make(map[int64]struct{}, len(facts))
	for _, f := range facts {
		if !f.Parity.Valid() {
			return nil, fmt.Errorf("stored parity %q for lesson %d: %w", f.Parity, f.LessonID, ErrInvalidRecurrence)
		}
		if f.Parity.Overlaps(slot.Parity) {
			occupied[f.ResourceID(kind)] = struct{}{}
		}
	}
	return occupied, nil
}

func (c *Calculator) partition(ctx context.Context, slot model.Slot, kind model.ResourceKind) (free, busy []model.Resource, err error) {
	if err := validateSlot(slot, kind); err != nil {
		return nil, nil, err
	}

	universe, err := c.resources.Enabled(ctx, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch enabled %ss: %w", kind, err)
	}

	occupied, err := c.occupiedSet(ctx, slot, kind)
	if err != nil {
		return nil, nil, err
	}

	// lo.Filter keeps the repository's name ordering on both halves.
	free = lo.Filter(universe, func(r model.Resource, _ int) bool {
		_, taken := occupied[r.ID]
		return !taken
	})
	busy = lo.Filter(universe, func(r model.Resource, _ int) bool {
		_, taken := occupied[r.ID]
		return taken
	})

	c.logger.Debug("availability partition",
		zap.Int64("semester_id", slot.SemesterID),
		zap.String("day", slot.Day.String()),
		zap.Int64("period_id", slot.PeriodID),
		zap.String("parity", string(slot.Parity)),
		zap.String("kind", string(kind)),
		zap.Int("free", len(free)),
		zap.Int("busy", len(busy)),
	)

	return free, busy, nil
}

// FreeResources returns the enabled resources of the kind with no colliding
// booking at the slot, ordered by display name.
func (c *Calculator) FreeResources(ctx context.Context, slot model.Slot, kind model.ResourceKind) ([]model.Resource, error) {
	free, _, err := c.partition(ctx, slot, kind)
	return free, err
}

// UnavailableResources returns the complement of FreeResources over the same
// enabled universe.
func (c *Calculator) UnavailableResources(ctx context.Context, slot model.Slot, kind model.ResourceKind) ([]model.Resource, error) {
	_, busy, err := c.partition(ctx, slot, kind)
	return busy, err
}

// AnnotatedAvailability returns the whole enabled universe as a single list
// tagged with availability, available entries first.
func (c *Calculator) AnnotatedAvailability(ctx context.Context, slot model.Slot, kind model.ResourceKind) ([]AnnotatedResource, error) {
	free, busy, err := c.partition(ctx, slot, kind)
	if err != nil {
		return nil, err
	}

	annotated := lo.Map(free, func(r model.Resource, _ int) AnnotatedResource {
		return AnnotatedResource{Resource: r, Available: true}
	})
	annotated = append(annotated, lo.Map(busy, func(r model.Resource, _ int) AnnotatedResource {
		return AnnotatedResource{Resource: r, Available: false}
	})...)
	return annotated, nil
}
