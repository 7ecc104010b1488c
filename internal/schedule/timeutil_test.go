package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-01-05"))
	assert.True(t, IsValidDate("2024-02-29"))

	assert.False(t, IsValidDate("2023-02-29"), "non-leap february")
	assert.False(t, IsValidDate("2024-13-40"))
	assert.False(t, IsValidDate("24-01-05"), "non-canonical year")
	assert.False(t, IsValidDate("2024-1-05"), "non-canonical month")
	assert.False(t, IsValidDate("2024/01/05"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidTime(t *testing.T) {
	assert.True(t, IsValidTime("09:00"))
	assert.True(t, IsValidTime("9:05"))
	assert.True(t, IsValidTime("0:00"))
	assert.True(t, IsValidTime("23:59"))

	assert.False(t, IsValidTime("24:00"))
	assert.False(t, IsValidTime("12:60"))
	assert.False(t, IsValidTime("12:5"))
	assert.False(t, IsValidTime("1200"))
	assert.False(t, IsValidTime("12:00:00"))
	assert.False(t, IsValidTime(""))
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 2.0, DurationHours("09:00", "11:00"))
	assert.Equal(t, 1.5, DurationHours("10:15", "11:45"))
	assert.Equal(t, 0.0, DurationHours("11:00", "09:00"), "inverted span clamps to zero")
	assert.Equal(t, 0.0, DurationHours("09:00", "09:00"))
	assert.Equal(t, 0.0, DurationHours("bad", "11:00"))
	assert.Equal(t, 0.0, DurationHours("09:00", ""))
}
