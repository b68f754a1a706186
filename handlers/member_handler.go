package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/anjiri1684/stackfit/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmergencyContact struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
}

type MemberRequest struct {
	Name             string           `json:"name" validate:"required"`
	Email            string           `json:"email" validate:"required,email"`
	Phone            string           `json:"phone" validate:"required"`
	MembershipType   string           `json:"membershipType" validate:"required,uuid"`
	StartDate        string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	Address          *string          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact" validate:"required"`
	Age              *int             `json:"age" validate:"omitempty,gte=0,lte=120"`
	Gender           *string          `json:"gender"`
	DateOfBirth      *string          `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	MedicalHistory   *string          `json:"medicalHistory"`
}

type RegisterMemberRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// memberView is a member row enhanced with the derived subscription fields;
// subscription state is always computed from the stored end date, never read
// back from storage.
type memberView struct {
	models.Member
	SubscriptionStatus string `json:"subscriptionStatus"`
	DaysRemaining      int    `json:"daysRemaining"`
}

func enhanceMember(member models.Member, now time.Time) memberView {
	return memberView{
		Member:             member,
		SubscriptionStatus: services.SubscriptionStatus(member.EndDate, now),
		DaysRemaining:      services.DaysRemaining(member.EndDate, now),
	}
}

// Public self-registration; the membership itself stays pending until the
// front desk assigns a plan and records a payment.
func RegisterMember(c *fiber.Ctx) error {
	var req RegisterMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.Member{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	password := string(hashedPassword)
	member := models.Member{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: &password,
		Status:   "pending",
	}

	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error during registration"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"member":  member,
	})
}

func ListMembers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Member{}).Preload("Plan")

	if status := c.Query("status"); status != "" {
		statusValues := strings.Split(status, ",")
		if len(statusValues) > 1 {
			query = query.Where("status IN ?", statusValues)
		} else {
			query = query.Where("status = ?", status)
		}
	}

	if membershipType := c.Query("membershipType"); membershipType != "" {
		query = query.Where("membership_type = ?", membershipType)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var members []models.Member
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	enhanced := make([]memberView, 0, len(members))
	for _, member := range members {
		enhanced = append(enhanced, enhanceMember(member, now))
	}

	return c.JSON(fiber.Map{
		"members":      enhanced,
		"totalPages":   int(math.Ceil(float64(total) / float64(limit))),
		"currentPage":  page,
		"totalMembers": total,
	})
}

type memberExportRow struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	MembershipType     string     `json:"membership_type"`
	Status             string     `json:"status"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	SubscriptionStatus string     `json:"subscription_status"`
	DaysRemaining      int        `json:"days_remaining"`
}

// Flat rows for the dashboard's CSV download; the formatting itself happens
// client side.
func ExportMembers(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Member{}).Preload("Plan")

	if status := c.Query("status"); status != "" {
		statusValues := strings.Split(status, ",")
		if len(statusValues) > 1 {
			query = query.Where("status IN ?", statusValues)
		} else {
			query = query.Where("status = ?", status)
		}
	}
	if membershipType := c.Query("membershipType"); membershipType != "" {
		query = query.Where("membership_type = ?", membershipType)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		query = query.Where("start_date >= ?", startDate)
	}
	if endDate := c.Query("endDate"); endDate != "" {
		query = query.Where("end_date <= ?", endDate)
	}

	var members []models.Member
	if err := query.Order("created_at desc").Find(&members).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch members data"})
	}

	now := time.Now()
	rows := make([]memberExportRow, 0, len(members))
	for _, member := range members {
		row := memberExportRow{
			ID:                 member.ID,
			Name:               member.Name,
			Email:              member.Email,
			Phone:              member.Phone,
			Address:            "N/A",
			MembershipType:     "N/A",
			Status:             member.Status,
			StartDate:          member.StartDate,
			EndDate:            member.EndDate,
			SubscriptionStatus: services.SubscriptionStatus(member.EndDate, now),
			DaysRemaining:      services.DaysRemaining(member.EndDate, now),
		}
		if member.Address != nil {
			row.Address = *member.Address
		}
		if member.Plan != nil {
			row.MembershipType = member.Plan.Name
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{"success": true, "members": rows})
}

func GetMember(c *fiber.Ctx) error {
	id := c.Params("id")

	var member models.Member
	err := database.DB.
		Preload("Plan").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date desc")
		}).
		Preload("Attendance", func(db *gorm.DB) *gorm.DB {
			return db.Order("date desc")
		}).
		First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	view := enhanceMember(member, now)

	attendanceStats := fiber.Map{
		"totalDays":            0,
		"presentDays":          0,
		"attendancePercentage": 0.0,
		"lastAttendance":       nil,
	}
	if len(member.Attendance) > 0 {
		totalDays := len(member.Attendance)
		presentDays := 0
		for _, record := range member.Attendance {
			if record.Status == "present" {
				presentDays++
			}
		}
		attendanceStats = fiber.Map{
			"totalDays":            totalDays,
			"presentDays":          presentDays,
			"attendancePercentage": float64(presentDays) / float64(totalDays) * 100,
			"lastAttendance":       member.Attendance[0].Date.Format("2006-01-02"),
		}
	}

	var totalPaid float64
	var lastPayment interface{}
	for _, payment := range member.Payments {
		if payment.Status == "completed" {
			totalPaid += payment.Amount
		}
	}
	if len(member.Payments) > 0 {
		lastPayment = member.Payments[0].PaymentDate.Format("2006-01-02")
	}

	return c.JSON(fiber.Map{
		"member":          view,
		"attendanceStats": attendanceStats,
		"paymentStats": fiber.Map{
			"totalPaid":      totalPaid,
			"lastPayment":    lastPayment,
			"paymentHistory": member.Payments,
		},
	})
}

func CreateMember(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	planID, _ := uuid.Parse(req.MembershipType)
	var plan models.MembershipPlan
	if err := database.DB.First(&plan, "id = ?", planID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid membership type"})
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid start date is required"})
	}
	endDate := services.PlanEndDate(startDate, plan.Duration)

	contactJSON, err := json.Marshal(req.EmergencyContact)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Emergency contact information is required"})
	}

	member := models.Member{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		MembershipType:   &planID,
		StartDate:        &startDate,
		EndDate:          &endDate,
		Address:          req.Address,
		EmergencyContact: contactJSON,
		Age:              req.Age,
		Gender:           req.Gender,
		MedicalHistory:   req.MedicalHistory,
		Status:           "pending_payment",
		CreatedBy:        actorID(c),
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			member.DateOfBirth = &dob
		}
	}

	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"member":  member,
		"message": "Member created successfully. Please record their payment to activate the membership.",
		"membership": fiber.Map{
			"duration": plan.Duration,
			"price":    plan.Price,
		},
	})
}

func UpdateMember(c *fiber.Ctx) error {
	id := c.Params("id")

	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	planID, _ := uuid.Parse(req.MembershipType)
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid start date is required"})
	}

	member.Name = req.Name
	member.Email = req.Email
	member.Phone = req.Phone
	member.Address = req.Address
	member.Age = req.Age
	member.Gender = req.Gender
	member.MedicalHistory = req.MedicalHistory
	member.MembershipType = &planID
	member.StartDate = &startDate
	member.UpdatedBy = actorID(c)

	if contactJSON, err := json.Marshal(req.EmergencyContact); err == nil {
		member.EmergencyContact = contactJSON
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			member.DateOfBirth = &dob
		}
	}

	// Changing the plan recomputes the end date from the new start date.
	var plan models.MembershipPlan
	if err := database.DB.First(&plan, "id = ?", planID).Error; err == nil {
		endDate := services.PlanEndDate(startDate, plan.Duration)
		member.EndDate = &endDate
	}

	if err := database.DB.Save(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(member)
}

func DeleteMember(c *fiber.Ctx) error {
	id := c.Params("id")

	var paymentCount, attendanceCount int64
	database.DB.Model(&models.Payment{}).Where("member_id = ?", id).Count(&paymentCount)
	database.DB.Model(&models.AttendanceRecord{}).Where("member_id = ?", id).Count(&attendanceCount)

	if paymentCount > 0 || attendanceCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":         "Cannot delete member with existing payment or attendance records",
			"hasPayments":   paymentCount > 0,
			"hasAttendance": attendanceCount > 0,
		})
	}

	result := database.DB.Delete(&models.Member{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Member not found"})
	}

	return c.JSON(fiber.Map{"message": "Member deleted successfully"})
}

func GetMemberAttendance(c *fiber.Ctx) error {
	id := c.Params("id")

	query := database.DB.Where("member_id = ?", id)
	if startDate, endDate := c.Query("startDate"), c.Query("endDate"); startDate != "" && endDate != "" {
		query = query.Where("date >= ? AND date <= ?", startDate, endDate)
	}

	var attendance []models.AttendanceRecord
	if err := query.Order("date desc").Find(&attendance).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var present, late, absent int
	for _, record := range attendance {
		switch record.Status {
		case "present":
			present++
		case "late":
			late++
		case "absent":
			absent++
		}
	}

	total := len(attendance)
	percentage := 0.0
	if total > 0 {
		percentage = float64(present+late) / float64(total) * 100
	}

	return c.JSON(fiber.Map{
		"attendance": attendance,
		"stats": fiber.Map{
			"totalDays":            total,
			"presentDays":          present,
			"lateDays":             late,
			"absentDays":           absent,
			"attendancePercentage": percentage,
		},
	})
}

func GetMemberPayments(c *fiber.Ctx) error {
	id := c.Params("id")

	var payments []models.Payment
	if err := database.DB.Where("member_id = ?", id).Order("payment_date desc").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var totalAmount float64
	var completed, pending int
	for _, payment := range payments {
		switch payment.Status {
		case "completed":
			totalAmount += payment.Amount
			completed++
		case "pending":
			pending++
		}
	}

	var lastPaymentDate interface{}
	if len(payments) > 0 {
		lastPaymentDate = payments[0].PaymentDate.Format("2006-01-02")
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"stats": fiber.Map{
			"totalAmount":       totalAmount,
			"completedPayments": completed,
			"pendingPayments":   pending,
			"lastPaymentDate":   lastPaymentDate,
		},
	})
}
