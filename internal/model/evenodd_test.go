package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvenOddValid(t *testing.T) {
	assert.True(t, EvenOddEven.Valid())
	assert.True(t, EvenOddOdd.Valid())
	assert.True(t, EvenOddWeekly.Valid())
	assert.False(t, EvenOdd("").Valid())
	assert.False(t, EvenOdd("BIWEEKLY").Valid())
	assert.False(t, EvenOdd("even").Valid())
}

func TestEvenOddOverlaps(t *testing.T) {
	tests := []struct {
		a, b EvenOdd
		want bool
	}{
		{EvenOddWeekly, EvenOddWeekly, true},
		{EvenOddWeekly, EvenOddEven, true},
		{EvenOddWeekly, EvenOddOdd, true},
		{EvenOddEven, EvenOddEven, true},
		{EvenOddOdd, EvenOddOdd, true},
		{EvenOddEven, EvenOddOdd, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.a)+"_"+string(tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
		})
	}
}

func TestEvenOddOverlapsSymmetric(t *testing.T) {
	all := []EvenOdd{EvenOddEven, EvenOddOdd, EvenOddWeekly}
	for _, a := range all {
		for _, b := range all {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "overlaps(%s,%s)", a, b)
		}
	}
}
