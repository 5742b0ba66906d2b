package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriodClockFormatting(t *testing.T) {
	p := Period{StartMinute: 8 * 60, EndMinute: 9*60 + 30}
	assert.Equal(t, "08:00", p.StartClock())
	assert.Equal(t, "09:30", p.EndClock())

	late := Period{StartMinute: 16*60 + 5, EndMinute: 17*60 + 35}
	assert.Equal(t, "16:05", late.StartClock())
	assert.Equal(t, "17:35", late.EndClock())
}
