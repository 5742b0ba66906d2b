package engine

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lectio/timetable/internal/model"
)

func newCalculator(f *fixture) *Calculator {
	return NewCalculator(f.store, f.dir, zap.NewNop())
}

func TestFreeResourcesEmptySlot(t *testing.T) {
	f := newFixture()
	calc := newCalculator(f)

	free, err := calc.FreeResources(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOddWeekly), model.ResourceRoom)
	require.NoError(t, err)
	assert.Len(t, free, 3)

	busy, err := calc.UnavailableResources(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOddWeekly), model.ResourceRoom)
	require.NoError(t, err)
	assert.Empty(t, busy)
}

func TestPartitionCoversUniverseExactly(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddEven, f.r1, f.lesson1)
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddWeekly, f.r2, f.lesson2)
	calc := newCalculator(f)
	ctx := context.Background()

	for _, parity := range []model.EvenOdd{model.EvenOddEven, model.EvenOddOdd, model.EvenOddWeekly} {
		slot := f.slot(time.Monday, f.p1.ID, parity)

		free, err := calc.FreeResources(ctx, slot, model.ResourceRoom)
		require.NoError(t, err)
		busy, err := calc.UnavailableResources(ctx, slot, model.ResourceRoom)
		require.NoError(t, err)

		freeIDs := lo.Map(free, func(r model.Resource, _ int) int64 { return r.ID })
		busyIDs := lo.Map(busy, func(r model.Resource, _ int) int64 { return r.ID })

		assert.Len(t, append(freeIDs, busyIDs...), 3, "parity=%s", parity)
		assert.Empty(t, lo.Intersect(freeIDs, busyIDs), "parity=%s", parity)
	}
}

func TestFreeResourcesParityRules(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddEven, f.r1, f.lesson1)
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddWeekly, f.r2, f.lesson2)
	calc := newCalculator(f)
	ctx := context.Background()

	// ODD query: the EVEN booking does not block r1, the WEEKLY one blocks r2.
	free, err := calc.FreeResources(ctx, f.slot(time.Monday, f.p1.ID, model.EvenOddOdd), model.ResourceRoom)
	require.NoError(t, err)
	freeIDs := lo.Map(free, func(r model.Resource, _ int) int64 { return r.ID })
	assert.ElementsMatch(t, []int64{f.r1.ID, f.r3.ID}, freeIDs)

	// WEEKLY query: both bookings block their rooms.
	free, err = calc.FreeResources(ctx, f.slot(time.Monday, f.p1.ID, model.EvenOddWeekly), model.ResourceRoom)
	require.NoError(t, err)
	freeIDs = lo.Map(free, func(r model.Resource, _ int) int64 { return r.ID })
	assert.ElementsMatch(t, []int64{f.r3.ID}, freeIDs)
}

func TestFreeResourcesKeepsNameOrder(t *testing.T) {
	f := newFixture()
	calc := newCalculator(f)

	free, err := calc.FreeResources(context.Background(), f.slot(time.Tuesday, f.p1.ID, model.EvenOddEven), model.ResourceRoom)
	require.NoError(t, err)

	names := lo.Map(free, func(r model.Resource, _ int) string { return r.Name })
	assert.Equal(t, []string{"1 Gym", "204", "305 Lab"}, names)
}

func TestAnnotatedAvailability(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddWeekly, f.r2, f.lesson1)
	calc := newCalculator(f)

	annotated, err := calc.AnnotatedAvailability(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOddEven), model.ResourceRoom)
	require.NoError(t, err)
	require.Len(t, annotated, 3)

	// Available entries come first, the occupied room is flagged last.
	assert.True(t, annotated[0].Available)
	assert.True(t, annotated[1].Available)
	assert.False(t, annotated[2].Available)
	assert.Equal(t, f.r2.ID, annotated[2].Resource.ID)
}

func TestAvailabilityForTeachers(t *testing.T) {
	f := newFixture()
	f.store.book(semesterID, time.Monday, f.p1.ID, model.EvenOddWeekly, f.r1, f.lesson1)
	calc := newCalculator(f)

	free, err := calc.FreeResources(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOddOdd), model.ResourceTeacher)
	require.NoError(t, err)

	freeIDs := lo.Map(free, func(r model.Resource, _ int) int64 { return r.ID })
	assert.ElementsMatch(t, []int64{f.t2.ID}, freeIDs)
}

func TestAvailabilityInvalidParity(t *testing.T) {
	f := newFixture()
	calc := newCalculator(f)

	_, err := calc.FreeResources(context.Background(), f.slot(time.Monday, f.p1.ID, model.EvenOdd("x")), model.ResourceRoom)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}
