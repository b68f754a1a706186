package handlers

import (
	"strings"
	"time"

	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/gofiber/fiber/v2"
)

func GetDashboardStats(c *fiber.Ctx) error {
	var activeMembers int64
	database.DB.Model(&models.Member{}).Where("status = ?", "active").Count(&activeMembers)

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var newMembersThisMonth int64
	database.DB.Model(&models.Member{}).Where("created_at >= ?", startOfMonth).Count(&newMembersThisMonth)

	var revenue float64
	database.DB.Model(&models.Payment{}).
		Where("payment_date >= ?", startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&revenue)

	var attendanceRecords []models.AttendanceRecord
	database.DB.Where("date >= ?", startOfMonth).Find(&attendanceRecords)

	presentCount := 0
	for _, record := range attendanceRecords {
		if record.Status == "present" {
			presentCount++
		}
	}
	attendanceRate := 0
	if len(attendanceRecords) > 0 {
		attendanceRate = int(float64(presentCount)/float64(len(attendanceRecords))*100 + 0.5)
	}

	var activeList []models.Member
	database.DB.Select("gender").Where("status = ?", "active").Find(&activeList)

	male, female := 0, 0
	for _, member := range activeList {
		if member.Gender == nil {
			continue
		}
		switch strings.ToLower(*member.Gender) {
		case "male":
			male++
		case "female":
			female++
		}
	}

	return c.JSON(fiber.Map{
		"activeMembers":       activeMembers,
		"newMembersThisMonth": newMembersThisMonth,
		"revenue":             revenue,
		"attendanceRate":      attendanceRate,
		"demographics": fiber.Map{
			"male":   male,
			"female": female,
			"total":  len(activeList),
		},
	})
}

type EventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" validate:"required"`
	Location    *string `json:"location"`
}

// parseEventDate accepts a full timestamp or a bare date for scheduling.
func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// GetUpcomingEvents lists the next ten scheduled gym events for the
// dashboard's announcements panel.
func GetUpcomingEvents(c *fiber.Ctx) error {
	var events []models.Event
	err := database.DB.
		Where("date >= ?", time.Now()).
		Order("date asc").
		Limit(10).
		Find(&events).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch events"})
	}

	return c.JSON(events)
}

func CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Valid event date is required"})
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		CreatedBy:   actorID(c),
	}
	if err := database.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func GetMembershipStats(c *fiber.Ctx) error {
	var plans []models.MembershipPlan
	if err := database.DB.Preload("Members").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch membership statistics"})
	}

	stats := make([]fiber.Map, 0, len(plans))
	for _, plan := range plans {
		stats = append(stats, fiber.Map{
			"id":           plan.ID,
			"name":         plan.Name,
			"price":        plan.Price,
			"active_count": len(plan.Members),
		})
	}

	return c.JSON(stats)
}
