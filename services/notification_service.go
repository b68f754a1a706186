package services

import (
	"log"
	"time"

	"github.com/anjiri1684/stackfit/models"
	"github.com/google/uuid"
)

// DueNotificationSender delivers expiry-related messages to a single member.
// The email-backed implementation lives in the notifications package; tests
// inject fakes.
type DueNotificationSender interface {
	SendOverdueNotification(member models.Member, endDate time.Time, daysOverdue int) error
	SendRenewalNotification(member models.Member, endDate time.Time, daysUntilRenewal int) error
}

type NotifiedMember struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	DaysOverdue      int       `json:"days_overdue,omitempty"`
	DaysUntilRenewal int       `json:"days_until_renewal,omitempty"`
}

type NotificationBucket struct {
	Total   int              `json:"total"`
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Members []NotifiedMember `json:"members"`
}

type DueNotificationResults struct {
	Overdue  NotificationBucket `json:"overdue"`
	Upcoming NotificationBucket `json:"upcoming"`
}

// NotifiedMemberIDs lists every member who actually received a notification,
// for the batch last_notification_sent update.
func (r DueNotificationResults) NotifiedMemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Overdue.Members)+len(r.Upcoming.Members))
	for _, m := range r.Overdue.Members {
		ids = append(ids, m.ID)
	}
	for _, m := range r.Upcoming.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// DispatchDueNotifications sends overdue and upcoming-renewal notices.
// Members are processed in the order they were fetched; a failed send is
// logged and counted but never aborts the rest of the batch.
func DispatchDueNotifications(sender DueNotificationSender, overdue, upcoming []models.Member, now time.Time) DueNotificationResults {
	results := DueNotificationResults{
		Overdue:  NotificationBucket{Total: len(overdue), Members: []NotifiedMember{}},
		Upcoming: NotificationBucket{Total: len(upcoming), Members: []NotifiedMember{}},
	}

	for _, member := range overdue {
		if member.EndDate == nil {
			results.Overdue.Failed++
			continue
		}
		daysOverdue := -DaysRemaining(member.EndDate, now)
		if err := sender.SendOverdueNotification(member, *member.EndDate, daysOverdue); err != nil {
			log.Printf("🔥 Failed to send overdue notification to %s: %v", member.Email, err)
			results.Overdue.Failed++
			continue
		}
		results.Overdue.Sent++
		results.Overdue.Members = append(results.Overdue.Members, NotifiedMember{
			ID:          member.ID,
			Name:        member.Name,
			Email:       member.Email,
			DaysOverdue: daysOverdue,
		})
	}

	for _, member := range upcoming {
		if member.EndDate == nil {
			results.Upcoming.Failed++
			continue
		}
		daysUntilRenewal := DaysRemaining(member.EndDate, now)
		if err := sender.SendRenewalNotification(member, *member.EndDate, daysUntilRenewal); err != nil {
			log.Printf("🔥 Failed to send renewal notification to %s: %v", member.Email, err)
			results.Upcoming.Failed++
			continue
		}
		results.Upcoming.Sent++
		results.Upcoming.Members = append(results.Upcoming.Members, NotifiedMember{
			ID:               member.ID,
			Name:             member.Name,
			Email:            member.Email,
			DaysUntilRenewal: daysUntilRenewal,
		})
	}

	return results
}
