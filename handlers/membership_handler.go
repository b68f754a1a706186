package handlers

import (
	"encoding/json"
	"errors"

	"github.com/anjiri1684/stackfit/database"
	"github.com/anjiri1684/stackfit/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MembershipPlanRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Duration    int      `json:"duration" validate:"required,gte=1"`
	Price       float64  `json:"price" validate:"gte=0"`
	Features    []string `json:"features" validate:"required"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func ListMembershipPlans(c *fiber.Ctx) error {
	query := database.DB.Model(&models.MembershipPlan{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var plans []models.MembershipPlan
	if err := query.Order("price asc").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(plans)
}

func GetMembershipPlan(c *fiber.Ctx) error {
	id := c.Params("id")

	var plan models.MembershipPlan
	if err := database.DB.Preload("Members").First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Membership type not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(plan)
}

func CreateMembershipPlan(c *fiber.Ctx) error {
	var req MembershipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	database.DB.Model(&models.MembershipPlan{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Membership type with this name already exists"})
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	featuresJSON, _ := json.Marshal(req.Features)
	plan := models.MembershipPlan{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Features:    featuresJSON,
		Status:      status,
		CreatedBy:   actorID(c),
	}

	if err := database.DB.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func UpdateMembershipPlan(c *fiber.Ctx) error {
	id := c.Params("id")

	var req MembershipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var plan models.MembershipPlan
	if err := database.DB.First(&plan, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Membership type not found"})
	}

	var count int64
	database.DB.Model(&models.MembershipPlan{}).Where("name = ? AND id <> ?", req.Name, id).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Membership type with this name already exists"})
	}

	featuresJSON, _ := json.Marshal(req.Features)
	plan.Name = req.Name
	plan.Description = req.Description
	plan.Duration = req.Duration
	plan.Price = req.Price
	plan.Features = featuresJSON
	if req.Status != "" {
		plan.Status = req.Status
	}
	plan.UpdatedBy = actorID(c)

	if err := database.DB.Save(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(plan)
}

func DeleteMembershipPlan(c *fiber.Ctx) error {
	id := c.Params("id")

	var memberCount int64
	database.DB.Model(&models.Member{}).Where("membership_type = ?", id).Count(&memberCount)
	if memberCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       "Cannot delete membership type as it is being used by members",
			"memberCount": memberCount,
		})
	}

	result := database.DB.Delete(&models.MembershipPlan{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Membership type not found"})
	}

	return c.JSON(fiber.Map{"message": "Membership type deleted successfully"})
}

func GetMembershipPlanStats(c *fiber.Ctx) error {
	var plans []models.MembershipPlan
	if err := database.DB.Preload("Members").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	stats := make([]fiber.Map, 0, len(plans))
	for _, plan := range plans {
		activeMembers := 0
		for _, member := range plan.Members {
			if member.Status == "active" {
				activeMembers++
			}
		}
		stats = append(stats, fiber.Map{
			"id":            plan.ID,
			"name":          plan.Name,
			"totalMembers":  len(plan.Members),
			"activeMembers": activeMembers,
		})
	}

	return c.JSON(stats)
}
