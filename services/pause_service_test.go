package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePauseWindow(t *testing.T) {
	now := date(2024, time.January, 10)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:  "valid window starting today",
			start: date(2024, time.January, 10),
			end:   date(2024, time.January, 20),
		},
		{
			name:  "valid future window",
			start: date(2024, time.February, 1),
			end:   date(2024, time.February, 15),
		},
		{
			name:  "full ninety days is allowed",
			start: date(2024, time.January, 10),
			end:   date(2024, time.April, 9),
		},
		{
			name:    "start in the past",
			start:   date(2024, time.January, 9),
			end:     date(2024, time.January, 20),
			wantErr: ErrPauseStartInPast,
		},
		{
			name:    "end equals start",
			start:   date(2024, time.January, 10),
			end:     date(2024, time.January, 10),
			wantErr: ErrPauseEndNotAfterStart,
		},
		{
			name:    "end before start",
			start:   date(2024, time.January, 20),
			end:     date(2024, time.January, 10),
			wantErr: ErrPauseEndNotAfterStart,
		},
		{
			name:    "longer than ninety days",
			start:   date(2024, time.January, 10),
			end:     date(2024, time.April, 10),
			wantErr: ErrPauseTooLong,
		},
		{
			name:    "past start reported before bad ordering",
			start:   date(2024, time.January, 1),
			end:     date(2023, time.December, 1),
			wantErr: ErrPauseStartInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePauseWindow(tt.start, tt.end, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPauseSpanDays(t *testing.T) {
	assert.Equal(t, 31, PauseSpanDays(date(2024, time.January, 10), date(2024, time.February, 10)))
	assert.Equal(t, 1, PauseSpanDays(date(2024, time.January, 10), date(2024, time.January, 11)))
}

func TestPausedEndDate(t *testing.T) {
	// A 31 day pause pushes the stored end date out by 31 days.
	got := PausedEndDate(date(2024, time.January, 10), 31)
	assert.Equal(t, date(2024, time.February, 10), got)

	// The extension applies even when the pause window itself is in the
	// future relative to the end date.
	got = PausedEndDate(date(2024, time.March, 1), 14)
	assert.Equal(t, date(2024, time.March, 15), got)
}
