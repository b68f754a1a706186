package handlers

import (
	"errors"
	"log"
	"math"
	"strings"
	"time"

	config "github.com/anjiri1684/stackfit/configs"
	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/anjiri1684/stackfit/notifications"
	"github.com/anjiri1684/stackfit/payments"
	"github.com/anjiri1684/stackfit/services"
	"github.com/anjiri1684/stackfit/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRequest struct {
	MemberID           string  `json:"memberId" validate:"required,uuid"`
	Amount             float64 `json:"amount" validate:"gte=0"`
	PaymentDate        string  `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	PaymentMethod      string  `json:"paymentMethod" validate:"required,oneof=cash card upi bank_transfer stripe"`
	PaymentType        string  `json:"paymentType" validate:"required,oneof=membership_fee registration_fee other"`
	Notes              *string `json:"notes"`
	SubscriptionMonths int     `json:"subscriptionMonths"`
}

type CreatePaymentIntentRequest struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	MemberID       string  `json:"memberId" validate:"required,uuid"`
	MembershipType string  `json:"membershipType"`
}

func CreatePaymentIntentHandler(c *fiber.Ctx) error {
	var req CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	intent, err := payments.CreatePaymentIntent(req.Amount, "usd", map[string]string{
		"memberId":       req.MemberID,
		"membershipType": req.MembershipType,
		"paymentType":    "membership_fee",
	})
	if err != nil {
		log.Printf("🔥 Stripe payment intent error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"clientSecret": intent.ClientSecret})
}

var errDuplicateStripeEvent = errors.New("stripe event already recorded")

// stripePaymentFromIntent builds the payment row for a succeeded intent.
// Stripe echoes back the metadata set at intent creation, so a missing or
// malformed memberId means the event is not one this system created.
func stripePaymentFromIntent(intent payments.PaymentIntentObject, now time.Time) (models.Payment, error) {
	memberID, err := uuid.Parse(intent.Metadata["memberId"])
	if err != nil {
		return models.Payment{}, errors.New("Missing or invalid memberId in payment metadata")
	}

	paymentType := intent.Metadata["paymentType"]
	if paymentType == "" {
		paymentType = "membership_fee"
	}

	stripePaymentID := intent.ID
	return models.Payment{
		MemberID:        memberID,
		Amount:          float64(intent.Amount) / 100,
		PaymentDate:     services.DateOnly(now),
		PaymentMethod:   "stripe",
		PaymentType:     paymentType,
		Status:          "completed",
		StripePaymentID: &stripePaymentID,
	}, nil
}

// isDuplicateKeyError recognizes a Postgres unique violation surfacing
// through gorm, with or without error translation enabled.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key value")
}

// HandleStripeWebhook processes asynchronous payment confirmations. A bad
// signature rejects the event with nothing persisted; Stripe retries on its
// own schedule, this handler never does. Redelivered events acknowledge with
// 200 so a payment recorded on an earlier delivery does not retry forever.
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := payments.ConstructWebhookEvent(c.Body(), c.Get("Stripe-Signature"), config.Config("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Webhook signature verification failed"})
	}

	if event.Type != "payment_intent.succeeded" {
		return c.JSON(fiber.Map{"received": true})
	}

	intent := event.Data.Object
	now := time.Now()
	payment, err := stripePaymentFromIntent(intent, now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Payment{}).Where("stripe_payment_id = ?", intent.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errDuplicateStripeEvent
		}

		receiptNumber, err := utils.GenerateUniqueReceiptNumber(tx)
		if err != nil {
			return err
		}
		payment.ReceiptNumber = &receiptNumber

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if payment.PaymentType == "membership_fee" {
			return applyRenewal(tx, payment.MemberID.String(), 1, now, actorID(c))
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, errDuplicateStripeEvent) || isDuplicateKeyError(txErr) {
			return c.JSON(fiber.Map{"received": true})
		}
		log.Printf("🔥 Webhook processing error: %v", txErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": txErr.Error()})
	}

	return c.JSON(fiber.Map{"received": true})
}

// applyRenewal extends the member's paid-up period: renewing before expiry
// adds to the stored end date, renewing after expiry restarts from today.
// Runs inside the caller's transaction so a payment insert failure never
// leaves a half-renewed member.
func applyRenewal(tx *gorm.DB, memberID string, subscriptionMonths int, now time.Time, actor *uuid.UUID) error {
	var member models.Member
	if err := tx.Clauses(rowLock()).First(&member, "id = ?", memberID).Error; err != nil {
		return err
	}

	newEndDate := services.RenewalEndDate(member.EndDate, now, subscriptionMonths)
	member.EndDate = &newEndDate
	member.Status = "active"
	member.UpdatedBy = actor
	return tx.Save(&member).Error
}

func RecordPayment(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentDate, _ := time.Parse("2006-01-02", req.PaymentDate)

	var payment models.Payment
	var member models.Member

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		receiptNumber, err := utils.GenerateUniqueReceiptNumber(tx)
		if err != nil {
			return err
		}

		payment = models.Payment{
			MemberID:      uuidMustParse(req.MemberID),
			Amount:        req.Amount,
			PaymentDate:   services.DateOnly(paymentDate),
			PaymentMethod: req.PaymentMethod,
			PaymentType:   req.PaymentType,
			Notes:         req.Notes,
			Status:        "completed",
			ReceiptNumber: &receiptNumber,
			RecordedBy:    actorID(c),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if req.PaymentType == "membership_fee" {
			if err := applyRenewal(tx, req.MemberID, req.SubscriptionMonths, time.Now(), actorID(c)); err != nil {
				return err
			}
		}

		return tx.First(&member, "id = ?", req.MemberID).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": txErr.Error()})
	}

	go services.GeneratePaymentReceipt(payment, member)

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func ListPayments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Payment{}).Preload("Member")

	if startDate, endDate := c.Query("startDate"), c.Query("endDate"); startDate != "" && endDate != "" {
		query = query.Where("payment_date >= ? AND payment_date <= ?", startDate, endDate)
	}
	if memberID := c.Query("memberId"); memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentType := c.Query("paymentType"); paymentType != "" {
		query = query.Where("payment_type = ?", paymentType)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("JOIN members ON members.id = payments.member_id").
			Where("payments.payment_method ILIKE ? OR payments.payment_type ILIKE ? OR members.name ILIKE ? OR members.email ILIKE ?",
				pattern, pattern, pattern, pattern)
	}

	var results []models.Payment
	if err := query.Order("payment_date desc").Find(&results).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"payments": results})
}

func GetPaymentStats(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Payment{})
	if startDate, endDate := c.Query("startDate"), c.Query("endDate"); startDate != "" && endDate != "" {
		query = query.Where("payment_date >= ? AND payment_date <= ?", startDate, endDate)
	}

	var results []models.Payment
	if err := query.Find(&results).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var totalAmount float64
	byPaymentType := map[string]float64{}
	byPaymentMethod := map[string]float64{}
	for _, payment := range results {
		totalAmount += payment.Amount
		byPaymentType[payment.PaymentType] += payment.Amount
		byPaymentMethod[payment.PaymentMethod] += payment.Amount
	}

	return c.JSON(fiber.Map{
		"totalAmount":     totalAmount,
		"byPaymentType":   byPaymentType,
		"byPaymentMethod": byPaymentMethod,
	})
}

func GetDuePayments(c *fiber.Ctx) error {
	now := time.Now()
	today := services.DateOnly(now)

	var members []models.Member
	err := database.DB.
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date desc")
		}).
		Where("end_date <= ?", today).
		Find(&members).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	duePayments := make([]fiber.Map, 0, len(members))
	for _, member := range members {
		var lastPayment interface{}
		if len(member.Payments) > 0 {
			lastPayment = member.Payments[0]
		}
		duePayments = append(duePayments, fiber.Map{
			"memberId":       member.ID,
			"name":           member.Name,
			"email":          member.Email,
			"membershipType": member.MembershipType,
			"endDate":        member.EndDate,
			"daysOverdue":    -services.DaysRemaining(member.EndDate, now),
			"lastPayment":    lastPayment,
		})
	}

	return c.JSON(duePayments)
}

func GetUpcomingRenewals(c *fiber.Ctx) error {
	now := time.Now()
	today := services.DateOnly(now)
	thirtyDaysFromNow := today.AddDate(0, 0, 30)

	var members []models.Member
	err := database.DB.
		Where("end_date >= ? AND end_date <= ?", today, thirtyDaysFromNow).
		Find(&members).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	upcomingRenewals := make([]fiber.Map, 0, len(members))
	for _, member := range members {
		upcomingRenewals = append(upcomingRenewals, fiber.Map{
			"memberId":         member.ID,
			"name":             member.Name,
			"email":            member.Email,
			"membershipType":   member.MembershipType,
			"endDate":          member.EndDate,
			"daysUntilRenewal": services.DaysRemaining(member.EndDate, now),
		})
	}

	return c.JSON(upcomingRenewals)
}

func ExportPayments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Payment{}).Preload("Member")

	if startDate, endDate := c.Query("startDate"), c.Query("endDate"); startDate != "" && endDate != "" {
		query = query.Where("payment_date >= ? AND payment_date <= ?", startDate, endDate)
	}
	if memberID := c.Query("memberId"); memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentType := c.Query("paymentType"); paymentType != "" {
		query = query.Where("payment_type = ?", paymentType)
	}

	var results []models.Payment
	if err := query.Order("payment_date desc").Find(&results).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"payments": results})
}

// SendDueNotifications emails every active member who is overdue or expires
// within the next week. Individual failures are tallied, the batch always
// runs to completion.
func SendDueNotifications(c *fiber.Ctx) error {
	results, err := DispatchDueNotificationBatch(notifications.EmailSender{}, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
	})
}

// DispatchDueNotificationBatch loads the overdue and upcoming member lists,
// dispatches notifications and stamps last_notification_sent on everyone who
// got one. Shared by the admin endpoint and the daily cron job.
func DispatchDueNotificationBatch(sender services.DueNotificationSender, now time.Time) (services.DueNotificationResults, error) {
	today := services.DateOnly(now)
	sevenDaysFromNow := today.AddDate(0, 0, 7)

	var overdueMembers []models.Member
	err := database.DB.
		Where("end_date <= ? AND status = ?", today, "active").
		Find(&overdueMembers).Error
	if err != nil {
		return services.DueNotificationResults{}, err
	}

	var upcomingMembers []models.Member
	err = database.DB.
		Where("end_date > ? AND end_date <= ? AND status = ?", today, sevenDaysFromNow, "active").
		Find(&upcomingMembers).Error
	if err != nil {
		return services.DueNotificationResults{}, err
	}

	results := services.DispatchDueNotifications(sender, overdueMembers, upcomingMembers, now)

	if ids := results.NotifiedMemberIDs(); len(ids) > 0 {
		err = database.DB.Model(&models.Member{}).
			Where("id IN ?", ids).
			Update("last_notification_sent", now).Error
		if err != nil {
			log.Printf("🔥 Failed to stamp last_notification_sent: %v", err)
		}
	}

	return results, nil
}

func GetPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var payment models.Payment
	if err := database.DB.Preload("Member").First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var history []models.Payment
	if err := database.DB.
		Where("member_id = ?", payment.MemberID).
		Order("payment_date desc").
		Limit(5).
		Find(&history).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	member := payment.Member

	// Fall back to sensible dates for legacy rows created before start/end
	// dates were mandatory.
	startDate := services.DateOnly(now).AddDate(0, 0, -30)
	if member.StartDate != nil {
		startDate = services.DateOnly(*member.StartDate)
	} else if !member.CreatedAt.IsZero() {
		startDate = services.DateOnly(member.CreatedAt)
	}
	endDate := startDate.AddDate(0, 0, 30)
	if member.EndDate != nil {
		endDate = services.DateOnly(*member.EndDate)
	}

	totalDays := services.DaysBetween(startDate, endDate)
	elapsedDays := services.DaysBetween(startDate, now)
	progress := 0.0
	if totalDays > 0 {
		progress = math.Min(100, math.Max(0, float64(elapsedDays)/float64(totalDays)*100))
	}

	return c.JSON(fiber.Map{
		"payment": payment,
		"subscription_period": fiber.Map{
			"start_date":     startDate.Format("2006-01-02"),
			"end_date":       endDate.Format("2006-01-02"),
			"total_days":     totalDays,
			"elapsed_days":   elapsedDays,
			"days_remaining": services.DaysBetween(services.DateOnly(now), endDate),
			"progress":       progress,
			"is_active":      !services.DateOnly(now).After(endDate),
		},
		"payment_history": history,
	})
}

func uuidMustParse(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}
