package jobs

import (
	"log"
	"time"

	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/anjiri1684/stackfit/services"
)

// Members keep their active status for a 7 day grace window after the
// end date passes before being flagged expired.
const expiryGraceDays = 7

func MarkExpiredMemberships() {
	log.Println("Running job: MarkExpiredMemberships...")

	cutoff := services.DateOnly(time.Now()).AddDate(0, 0, -expiryGraceDays)

	var expiredMembers []models.Member
	err := database.DB.
		Where("status = ? AND is_paused = ? AND end_date IS NOT NULL AND end_date < ?", "active", false, cutoff).
		Find(&expiredMembers).Error
	if err != nil {
		log.Printf("Error checking for expired memberships: %v", err)
		return
	}

	if len(expiredMembers) == 0 {
		log.Println("No expired memberships found.")
		return
	}

	for _, member := range expiredMembers {
		member.Status = "expired"
		database.DB.Save(&member)
	}

	log.Printf("Marked %d membership(s) as expired.", len(expiredMembers))
}
