package clock_test

import (
	"chappbooking/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOf(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "strips time of day",
			input:    time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC),
			expected: clock.Date(2025, 3, 9),
		},
		{
			name:     "keeps the local calendar date",
			input:    time.Date(2025, 3, 10, 1, 0, 0, 0, jakarta),
			expected: clock.Date(2025, 3, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(clock.DateOf(tt.input)))
		})
	}
}

func TestFixed(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	c := clock.Fixed(now)

	assert.Equal(t, now, c.Now())
	assert.Equal(t, clock.Date(2025, 6, 15), c.Today())
}

func TestSystemClock(t *testing.T) {
	c := clock.New()
	today := c.Today()

	assert.Zero(t, today.Hour())
	assert.Equal(t, time.UTC, today.Location())
	assert.False(t, c.Now().IsZero())
}
