package services

import (
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/stackfit/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSender struct {
	overdueCalls  []string
	upcomingCalls []string
	failEmails    map[string]bool
}

func (f *fakeSender) SendOverdueNotification(member models.Member, endDate time.Time, daysOverdue int) error {
	f.overdueCalls = append(f.overdueCalls, member.Email)
	if f.failEmails[member.Email] {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (f *fakeSender) SendRenewalNotification(member models.Member, endDate time.Time, daysUntilRenewal int) error {
	f.upcomingCalls = append(f.upcomingCalls, member.Email)
	if f.failEmails[member.Email] {
		return errors.New("smtp unavailable")
	}
	return nil
}

func testMember(name, email string, endDate *time.Time) models.Member {
	return models.Member{
		ID:      uuid.New(),
		Name:    name,
		Email:   email,
		EndDate: endDate,
	}
}

func TestDispatchDueNotifications(t *testing.T) {
	now := date(2024, time.January, 15)
	sender := &fakeSender{}

	overdue := []models.Member{
		testMember("Jane", "jane@example.com", datePtr(2024, time.January, 5)),
		testMember("John", "john@example.com", datePtr(2024, time.January, 14)),
	}
	upcoming := []models.Member{
		testMember("Mary", "mary@example.com", datePtr(2024, time.January, 20)),
	}

	results := DispatchDueNotifications(sender, overdue, upcoming, now)

	assert.Equal(t, 2, results.Overdue.Total)
	assert.Equal(t, 2, results.Overdue.Sent)
	assert.Equal(t, 0, results.Overdue.Failed)
	assert.Equal(t, 1, results.Upcoming.Sent)

	assert.Equal(t, 10, results.Overdue.Members[0].DaysOverdue)
	assert.Equal(t, 1, results.Overdue.Members[1].DaysOverdue)
	assert.Equal(t, 5, results.Upcoming.Members[0].DaysUntilRenewal)

	assert.Len(t, results.NotifiedMemberIDs(), 3)
}

func TestDispatchDueNotificationsContinuesAfterFailure(t *testing.T) {
	now := date(2024, time.January, 15)
	sender := &fakeSender{failEmails: map[string]bool{"jane@example.com": true}}

	overdue := []models.Member{
		testMember("Jane", "jane@example.com", datePtr(2024, time.January, 5)),
		testMember("John", "john@example.com", datePtr(2024, time.January, 10)),
	}

	results := DispatchDueNotifications(sender, overdue, nil, now)

	assert.Equal(t, 2, results.Overdue.Total)
	assert.Equal(t, 1, results.Overdue.Sent)
	assert.Equal(t, 1, results.Overdue.Failed)
	// Both sends were attempted despite the first failing.
	assert.Equal(t, []string{"jane@example.com", "john@example.com"}, sender.overdueCalls)

	ids := results.NotifiedMemberIDs()
	assert.Len(t, ids, 1)
	assert.Equal(t, overdue[1].ID, ids[0])
}

func TestDispatchDueNotificationsMissingEndDate(t *testing.T) {
	now := date(2024, time.January, 15)
	sender := &fakeSender{}

	overdue := []models.Member{testMember("Jane", "jane@example.com", nil)}

	results := DispatchDueNotifications(sender, overdue, nil, now)

	assert.Equal(t, 0, results.Overdue.Sent)
	assert.Equal(t, 1, results.Overdue.Failed)
	assert.Empty(t, sender.overdueCalls)
}
