package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/model"
)

func newChecker(f *fixture) *Checker {
	return NewChecker(f.store, zap.NewNop())
}

func TestHasConflictEmptySchedule(t *testing.T) {
	f := newFixture()
	checker := newChecker(f)
	ctx := context.Background()

	for _, parity := range []model.EvenOdd{model.EvenOddEven, model.EvenOddOdd, model.EvenOddWeekly} {
		for _, kind := range []model.ResourceKind{model.ResourceGroup, model.ResourceTeacher, model.ResourceRoom} {
			conflict, err := checker.HasConflict(ctx, f.slot(time.Monday, f.p1.ID, parity), kind, 1)
			require.NoError(t, err)
			assert.False(t, conflict, "kind=%s parity=%s", kind, parity)
		}
	}
}

func TestHasConflictRoomParities(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddEven, f.r1, f.lesson1)
	checker := newChecker(f)
	ctx := context.Background()

	tests := []struct {
		parity model.EvenOdd
		want   bool
	}{
		{model.EvenOddEven, true},
		{model.EvenOddOdd, false},
		{model.EvenOddWeekly, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.parity), func(t *testing.T) {
			conflict, err := checker.HasConflict(ctx, f.slot(time.Monday, f.p1.ID, tt.parity), model.ResourceRoom, f.r1.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, conflict)
		})
	}
}

func TestHasConflictWeeklyBlocksBothParities(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Wednesday, f.p2.ID, model.EvenOddWeekly, f.r2, f.lesson1)
	checker := newChecker(f)
	ctx := context.Background()

	for _, parity := range []model.EvenOdd{model.EvenOddEven, model.EvenOddOdd, model.EvenOddWeekly} {
		conflict, err := checker.HasConflict(ctx, f.slot(time.Wednesday, f.p2.ID, parity), model.ResourceTeacher, f.lesson1.TeacherID)
		require.NoError(t, err)
		assert.True(t, conflict, "parity=%s", parity)
	}
}

func TestConflictsWeeklyOverSplitBookings(t *testing.T) {
	// EVEN and ODD halves booked separately; a WEEKLY proposal collides
	// with both.
	f := newFixture()
	f.store.book(semesterID, time.Friday, f.p1.ID, model.EvenOddEven, f.r1, f.lesson1)
	f.store.book(semesterID, time.Friday, f.p1.ID, model.EvenOddOdd, f.r1, f.lesson2)
	checker := newChecker(f)

	count, err := checker.Conflicts(context.Background(), f.slot(time.Friday, f.p1.ID, model.EvenOddWeekly), model.ResourceRoom, f.r1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHasConflictScopedToSlotAndResource(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddWeekly, f.r1, f.lesson1)
	checker := newChecker(f)
	ctx := context.Background()

	conflict, err := checker.HasConflict(ctx, f.slot(time.Monday, f.p1.ID, model.EvenOddWeekly), model.ResourceRoom, f.r2.ID)
	require.NoError(t, err)
	assert.False(t, conflict, "different room must be free")

	conflict, err = checker.HasConflict(ctx, f.slot(time.Tuesday, f.p1.ID, model.EvenOddWeekly), model.ResourceRoom, f.r1.ID)
	require.NoError(t, err)
	assert.False(t, conflict, "different day must be free")

	conflict, err = checker.HasConflict(ctx, f.slot(time.Monday, f.p2.ID, model.EvenOddWeekly), model.ResourceRoom, f.r1.ID)
	require.NoError(t, err)
	assert.False(t, conflict, "different period must be free")
}

func TestHasConflictGroupThroughLesson(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Thursday, f.p1.ID, model.EvenOddOdd, f.r3, f.lesson1)
	checker := newChecker(f)
	ctx := context.Background()

	conflict, err := checker.HasConflict(ctx, f.slot(time.Thursday, f.p1.ID, model.EvenOddOdd), model.ResourceGroup, f.lesson1.GroupID)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = checker.HasConflict(ctx, f.slot(time.Thursday, f.p1.ID, model.EvenOddOdd), model.ResourceGroup, f.g2.ID)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestConflictsInvalidParity(t *testing.T) {
	f := newFixture()
	checker := newChecker(f)

	_, err := checker.Conflicts(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOdd("FORTNIGHTLY")), model.ResourceRoom, f.r1.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestConflictsUnknownKind(t *testing.T) {
	f := newFixture()
	checker := newChecker(f)

	_, err := checker.Conflicts(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOddEven), model.ResourceKind("building"), 1)
	require.Error(t, err)
}
