package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при неверном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// ErrTimeOverflow возвращается, когда время выходит за пределы суток
var ErrTimeOverflow = errors.New("time is out of day range")

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString время суток в формате "HH:MM"
type TimeString string

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(parsed), nil
}

// FromMinutes создает TimeString из количества минут от начала суток
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes количество минут от начала суток
// Для некорректной строки возвращает -1
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes сдвигает время на указанное количество минут в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current := t.Minutes()
	if current < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return FromMinutes(current + minutes)
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeString) IsValid() bool {
	return t.Minutes() >= 0
}

func (t TimeString) String() string {
	return string(t)
}
