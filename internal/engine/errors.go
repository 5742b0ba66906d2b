package engine

import (
	"errors"
	"fmt"

	"github.com/lectio/timetable/internal/model"
)

var (
	// ErrNotFound means the requested anchor (semester, group, teacher,
	// room) does not exist. A valid anchor with no bookings is not an
	// error; it yields an empty result.
	ErrNotFound = errors.New("not found")

	// ErrDataIntegrity means more than one lesson resolved for a single
	// (day, period, parity) cell of one anchor. That can only happen when
	// a booking bypassed the conflict checker; assembly fails loudly
	// instead of picking a row.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrInvalidRecurrence means a parity value outside EVEN/ODD/WEEKLY
	// reached the engine. It is a programming error, not a business rule.
	ErrInvalidRecurrence = errors.New("invalid recurrence")
)

func validateSlot(slot model.Slot, kind model.ResourceKind) error {
	if !slot.Parity.Valid() {
		return fmt.Errorf("parity %q: %w", slot.Parity, ErrInvalidRecurrence)
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown resource kind %q", kind)
	}
	return nil
}
