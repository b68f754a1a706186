package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/stackfit/handlers"
	"github.com/anjiri1684/stackfit/notifications"
)

func SendDueNotifications() {
	log.Println("Running job: SendDueNotifications...")

	results, err := handlers.DispatchDueNotificationBatch(notifications.EmailSender{}, time.Now())
	if err != nil {
		log.Printf("Error sending due notifications: %v", err)
		return
	}

	log.Printf("Due notifications sent: %d overdue, %d upcoming (%d failed).",
		results.Overdue.Sent,
		results.Upcoming.Sent,
		results.Overdue.Failed+results.Upcoming.Failed,
	)
}
