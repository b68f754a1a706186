package handlers

import (
	"time"

	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/anjiri1684/stackfit/services"
	"github.com/anjiri1684/stackfit/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttendanceRequest struct {
	MemberID string  `json:"memberId" validate:"required,uuid"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string  `json:"status" validate:"required,oneof=present absent late"`
	Notes    *string `json:"notes"`
}

type BulkAttendanceRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Records []struct {
		MemberID string  `json:"memberId" validate:"required,uuid"`
		Status   string  `json:"status" validate:"required,oneof=present absent late"`
		Notes    *string `json:"notes"`
	} `json:"records" validate:"required,min=1,dive"`
}

func MarkAttendance(c *fiber.Ctx) error {
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	var count int64
	database.DB.Model(&models.AttendanceRecord{}).
		Where("member_id = ? AND date = ?", req.MemberID, services.DateOnly(date)).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Attendance already marked for this date"})
	}

	memberID, _ := uuid.Parse(req.MemberID)
	record := models.AttendanceRecord{
		MemberID: memberID,
		Date:     services.DateOnly(date),
		Status:   req.Status,
		Notes:    req.Notes,
		MarkedBy: actorID(c),
	}

	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	if err := database.DB.First(&member, "id = ?", memberID).Error; err == nil {
		websocket.PublishCheckin(websocket.CheckinEvent{
			MemberID:   member.ID,
			MemberName: member.Name,
			Status:     record.Status,
			Date:       record.Date.Format("2006-01-02"),
			MarkedAt:   time.Now(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func BulkMarkAttendance(c *fiber.Ctx) error {
	var req BulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid records format"})
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	records := make([]models.AttendanceRecord, 0, len(req.Records))
	for _, entry := range req.Records {
		memberID, _ := uuid.Parse(entry.MemberID)
		records = append(records, models.AttendanceRecord{
			MemberID: memberID,
			Date:     services.DateOnly(date),
			Status:   entry.Status,
			Notes:    entry.Notes,
			MarkedBy: actorID(c),
		})
	}

	if err := database.DB.Create(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(records)
}

func ListAttendance(c *fiber.Ctx) error {
	query := database.DB.Model(&models.AttendanceRecord{}).Preload("Member")

	startDate, endDate := c.Query("startDate"), c.Query("endDate")
	switch {
	case startDate != "" && endDate != "":
		query = query.Where("date >= ? AND date <= ?", startDate, endDate)
	case startDate != "":
		query = query.Where("date = ?", startDate)
	case endDate != "":
		query = query.Where("date = ?", endDate)
	}

	if memberID := c.Query("memberId"); memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var records []models.AttendanceRecord
	if err := query.Order("date desc").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(records)
}

func GetTodayAttendance(c *fiber.Ctx) error {
	today := services.DateOnly(time.Now())

	var records []models.AttendanceRecord
	if err := database.DB.Preload("Member").Where("date = ?", today).Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(records)
}

func UpdateAttendance(c *fiber.Ctx) error {
	id := c.Params("id")

	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var record models.AttendanceRecord
	if err := database.DB.First(&record, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attendance record not found"})
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	record.Date = services.DateOnly(date)
	record.Status = req.Status
	record.Notes = req.Notes
	record.UpdatedBy = actorID(c)

	if err := database.DB.Save(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(record)
}

func GetAttendanceStats(c *fiber.Ctx) error {
	query := database.DB.Model(&models.AttendanceRecord{}).Preload("Member")

	if startDate, endDate := c.Query("startDate"), c.Query("endDate"); startDate != "" && endDate != "" {
		query = query.Where("date >= ? AND date <= ?", startDate, endDate)
	}
	if memberID := c.Query("memberId"); memberID != "" {
		query = query.Where("member_id = ?", memberID)
	}

	var records []models.AttendanceRecord
	if err := query.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type memberStats struct {
		Name    string `json:"name"`
		Total   int    `json:"total"`
		Present int    `json:"present"`
		Absent  int    `json:"absent"`
		Late    int    `json:"late"`
	}

	var present, absent, late int
	memberWise := map[string]*memberStats{}
	for _, record := range records {
		switch record.Status {
		case "present":
			present++
		case "absent":
			absent++
		case "late":
			late++
		}

		key := record.MemberID.String()
		stats, ok := memberWise[key]
		if !ok {
			stats = &memberStats{Name: record.Member.Name}
			memberWise[key] = stats
		}
		stats.Total++
		switch record.Status {
		case "present":
			stats.Present++
		case "absent":
			stats.Absent++
		case "late":
			stats.Late++
		}
	}

	return c.JSON(fiber.Map{
		"total":      len(records),
		"present":    present,
		"absent":     absent,
		"late":       late,
		"memberWise": memberWise,
	})
}
