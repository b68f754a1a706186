package services

import (
	"time"
)

// Subscription state is derived from the stored end date on every read; it is
// only written back by the renewal flow (active) and the expiry job (expired).

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// DateOnly drops the time-of-day component so all membership date arithmetic
// works in whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b, negative when b
// is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// DaysRemaining is the number of whole days until the membership end date,
// negative once it has passed. A missing end date counts as already expired.
func DaysRemaining(endDate *time.Time, now time.Time) int {
	if endDate == nil {
		return -1
	}
	return DaysBetween(now, *endDate)
}

// SubscriptionStatus reports "active" while at least the end date itself is
// still today or in the future. The last paid-for day counts as active.
func SubscriptionStatus(endDate *time.Time, now time.Time) string {
	if DaysRemaining(endDate, now) >= 0 {
		return SubscriptionActive
	}
	return SubscriptionExpired
}

// PlanEndDate computes the end of a membership bought on start for a plan
// lasting the given number of months.
func PlanEndDate(start time.Time, durationMonths int) time.Time {
	return DateOnly(start).AddDate(0, durationMonths, 0)
}

// RenewalEndDate implements the renewal rule shared by manual payments and
// the Stripe webhook: paying before expiry extends the current end date so no
// already-paid-for time is lost; paying after expiry (or with no end date on
// record) starts a fresh period from today.
func RenewalEndDate(current *time.Time, now time.Time, subscriptionMonths int) time.Time {
	if subscriptionMonths <= 0 {
		subscriptionMonths = 1
	}
	today := DateOnly(now)
	if current != nil && DateOnly(*current).After(today) {
		return DateOnly(*current).AddDate(0, subscriptionMonths, 0)
	}
	return today.AddDate(0, subscriptionMonths, 0)
}
