package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := TimeString("09:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), next)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("20:00").IsAfter("19:59"))
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, -1, TimeString("nope").Minutes())
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2024, 1, 1, 14, 7, 59, 0, time.UTC)
	assert.Equal(t, TimeString("14:07"), NewTimeString(moment))
}
