package services

import (
	"errors"
	"time"
)

// MaxPauseDays caps how long a membership can be frozen in one go.
const MaxPauseDays = 90

// Returned by ValidatePauseWindow; the messages are surfaced verbatim in the
// API error body.
var (
	ErrPauseStartInPast      = errors.New("Start date cannot be in the past")
	ErrPauseEndNotAfterStart = errors.New("End date must be after start date")
	ErrPauseTooLong          = errors.New("Pause duration cannot exceed 90 days")
)

// PauseSpanDays is the length of the pause window in whole days.
func PauseSpanDays(start, end time.Time) int {
	return DaysBetween(start, end)
}

// ValidatePauseWindow checks a requested pause window against today. Checks
// run in order and the first failure wins.
func ValidatePauseWindow(start, end, now time.Time) error {
	today := DateOnly(now)
	if DateOnly(start).Before(today) {
		return ErrPauseStartInPast
	}
	if !DateOnly(end).After(DateOnly(start)) {
		return ErrPauseEndNotAfterStart
	}
	if PauseSpanDays(start, end) > MaxPauseDays {
		return ErrPauseTooLong
	}
	return nil
}

// PausedEndDate extends the member's current end date by the pause span, so
// the originally purchased duration is preserved. The extension is always
// taken from the stored end date, even when the pause window starts in the
// future.
func PausedEndDate(currentEnd time.Time, spanDays int) time.Time {
	return DateOnly(currentEnd).AddDate(0, 0, spanDays)
}
