package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/anjiri1684/stackfit/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rowLock takes a FOR UPDATE lock so concurrent pause/resume/renewal requests
// for the same member serialize instead of clobbering each other.
func rowLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

type PauseMembershipRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required"`
}

// PauseMembership freezes an active membership for the requested window and
// pushes the end date out by the window's length, so the member keeps the
// full duration they paid for. The whole read-modify-write runs in one
// transaction; two concurrent pause requests cannot both apply.
func PauseMembership(c *fiber.Ctx) error {
	id := c.Params("id")

	var req PauseMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	var pauseRecord models.MembershipPause
	var member models.Member

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(rowLock()).First(&member, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Member not found")
			}
			return err
		}

		if member.IsPaused {
			return fiber.NewError(fiber.StatusBadRequest, "Membership is already paused")
		}
		if member.Status != "active" {
			return fiber.NewError(fiber.StatusBadRequest, "Only active memberships can be paused")
		}
		if err := services.ValidatePauseWindow(startDate, endDate, time.Now()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if member.EndDate == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Member has no membership end date to pause")
		}

		spanDays := services.PauseSpanDays(startDate, endDate)
		newEndDate := services.PausedEndDate(*member.EndDate, spanDays)

		pauseRecord = models.MembershipPause{
			MemberID:        member.ID,
			StartDate:       services.DateOnly(startDate),
			EndDate:         services.DateOnly(endDate),
			Reason:          req.Reason,
			Status:          "approved",
			OriginalEndDate: services.DateOnly(*member.EndDate),
			NewEndDate:      newEndDate,
			CreatedBy:       actorID(c),
			ApprovedBy:      actorID(c),
		}
		if err := tx.Create(&pauseRecord).Error; err != nil {
			return err
		}

		member.IsPaused = true
		member.CurrentPauseID = &pauseRecord.ID
		member.EndDate = &newEndDate
		member.UpdatedBy = actorID(c)
		return tx.Save(&member).Error
	})

	if txErr != nil {
		var fiberErr *fiber.Error
		if errors.As(txErr, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": txErr.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Membership paused successfully",
		"pause":   pauseRecord,
		"member":  member,
	})
}

// ResumeMembership cancels the current pause and restores the end date the
// member had before pausing.
func ResumeMembership(c *fiber.Ctx) error {
	id := c.Params("id")

	var member models.Member

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(rowLock()).First(&member, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Member not found")
			}
			return err
		}

		if !member.IsPaused || member.CurrentPauseID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Membership is not currently paused")
		}

		var pauseRecord models.MembershipPause
		if err := tx.First(&pauseRecord, "id = ?", member.CurrentPauseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Pause record not found")
			}
			return err
		}

		pauseRecord.Status = "cancelled"
		if err := tx.Save(&pauseRecord).Error; err != nil {
			return err
		}

		originalEndDate := pauseRecord.OriginalEndDate
		member.IsPaused = false
		member.CurrentPauseID = nil
		member.EndDate = &originalEndDate
		member.UpdatedBy = actorID(c)
		return tx.Save(&member).Error
	})

	if txErr != nil {
		var fiberErr *fiber.Error
		if errors.As(txErr, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": txErr.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Membership resumed successfully",
		"member":  member,
	})
}

func GetPauseHistory(c *fiber.Ctx) error {
	id := c.Params("id")

	var count int64
	database.DB.Model(&models.Member{}).Where("id = ?", id).Count(&count)
	if count == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	var pauses []models.MembershipPause
	if err := database.DB.Where("member_id = ?", id).Order("created_at desc").Find(&pauses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch pause records"})
	}

	return c.JSON(pauses)
}
