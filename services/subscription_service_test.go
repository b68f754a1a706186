package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func TestDaysRemaining(t *testing.T) {
	now := date(2024, time.January, 15)

	tests := []struct {
		name    string
		endDate *time.Time
		want    int
	}{
		{"future end date", datePtr(2024, time.January, 25), 10},
		{"ends today", datePtr(2024, time.January, 15), 0},
		{"already passed", datePtr(2024, time.January, 10), -5},
		{"no end date", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(tt.endDate, now))
		})
	}
}

func TestDaysRemainingIgnoresTimeOfDay(t *testing.T) {
	// Late in the evening of the last day the membership is still live.
	now := time.Date(2024, time.January, 15, 23, 45, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 15, 6, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysRemaining(&end, now))
	assert.Equal(t, SubscriptionActive, SubscriptionStatus(&end, now))
}

func TestSubscriptionStatus(t *testing.T) {
	now := date(2024, time.January, 15)

	tests := []struct {
		name    string
		endDate *time.Time
		want    string
	}{
		{"active with days left", datePtr(2024, time.February, 1), SubscriptionActive},
		{"last paid day is active", datePtr(2024, time.January, 15), SubscriptionActive},
		{"expired yesterday", datePtr(2024, time.January, 14), SubscriptionExpired},
		{"no end date is expired", nil, SubscriptionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SubscriptionStatus(tt.endDate, now))
		})
	}
}

func TestPlanEndDate(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 15), PlanEndDate(date(2024, time.January, 15), 1))
	assert.Equal(t, date(2024, time.April, 15), PlanEndDate(date(2024, time.January, 15), 3))
	assert.Equal(t, date(2025, time.January, 15), PlanEndDate(date(2024, time.January, 15), 12))
}

func TestRenewalEndDate(t *testing.T) {
	now := date(2024, time.January, 1)

	tests := []struct {
		name    string
		current *time.Time
		months  int
		want    time.Time
	}{
		{
			name:    "expired membership restarts from today",
			current: datePtr(2023, time.December, 1),
			months:  1,
			want:    date(2024, time.February, 1),
		},
		{
			name:    "active membership extends from current end",
			current: datePtr(2024, time.March, 10),
			months:  1,
			want:    date(2024, time.April, 10),
		},
		{
			name:    "ends today restarts from today",
			current: datePtr(2024, time.January, 1),
			months:  2,
			want:    date(2024, time.March, 1),
		},
		{
			name:    "no end date starts fresh",
			current: nil,
			months:  3,
			want:    date(2024, time.April, 1),
		},
		{
			name:    "zero months defaults to one",
			current: nil,
			months:  0,
			want:    date(2024, time.February, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenewalEndDate(tt.current, now, tt.months))
		})
	}
}
