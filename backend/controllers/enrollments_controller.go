package controllers

import (
	"errors"
	"strconv"

	"online_project/backend/config"
	"online_project/backend/middleware"
	"online_project/backend/models"
	"online_project/backend/policy"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewEnrollmentsController(db *gorm.DB, cfg *config.Config) *EnrollmentsController {
	return &EnrollmentsController{DB: db, Cfg: cfg}
}

func enrollmentJSON(enrollment models.Enrollment) fiber.Map {
	return fiber.Map{
		"id":     enrollment.ID,
		"user":   enrollment.UserID,
		"course": enrollment.CourseID,
		"status": enrollment.Status,
	}
}

type EnrollmentInput struct {
	Course uint   `json:"course" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=active completed cancelled"`
}

func (ec *EnrollmentsController) ListEnrollments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := ec.DB.Order("id")
	if scope := policy.OwnedScope(user); scope != 0 {
		query = query.Where("user_id = ?", scope)
	}

	var enrollments []models.Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(enrollments))
	for _, enrollment := range enrollments {
		result = append(result, enrollmentJSON(enrollment))
	}

	return c.JSON(result)
}

// CreateEnrollment enrolls the caller; any caller-supplied owner is ignored.
func (ec *EnrollmentsController) CreateEnrollment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input EnrollmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := ec.DB.First(&course, input.Course).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var existing models.Enrollment
	err := ec.DB.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Already enrolled in this course")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	status := input.Status
	if status == "" {
		status = models.EnrollmentActive
	}

	enrollment := models.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   status,
	}

	if err := ec.DB.Create(&enrollment).Error; err != nil {
		return utils.Conflict(c, "Already enrolled in this course")
	}

	return c.Status(fiber.StatusCreated).JSON(enrollmentJSON(enrollment))
}

func (ec *EnrollmentsController) getOwned(c *fiber.Ctx, action policy.Action) (*models.Enrollment, error) {
	user := middleware.CurrentUser(c)

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid enrollment ID")
	}

	var enrollment models.Enrollment
	if err := ec.DB.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Enrollment not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	if !policy.CanAccessRecord(user, enrollment.UserID, action) {
		return nil, utils.Forbidden(c, "Permission denied")
	}

	return &enrollment, nil
}

func (ec *EnrollmentsController) GetEnrollment(c *fiber.Ctx) error {
	enrollment, err := ec.getOwned(c, policy.ActionRead)
	if enrollment == nil {
		return err
	}
	return c.JSON(enrollmentJSON(*enrollment))
}

func (ec *EnrollmentsController) UpdateEnrollment(c *fiber.Ctx) error {
	enrollment, err := ec.getOwned(c, policy.ActionUpdate)
	if enrollment == nil {
		return err
	}

	var input EnrollmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Status != "" {
		if input.Status != models.EnrollmentActive &&
			input.Status != models.EnrollmentCompleted &&
			input.Status != models.EnrollmentCancelled {
			return utils.ValidationError(c, map[string]string{"status": "Must be one of: active completed cancelled"})
		}
		enrollment.Status = input.Status
	}

	if err := ec.DB.Save(enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not update enrollment")
	}

	return c.JSON(enrollmentJSON(*enrollment))
}

func (ec *EnrollmentsController) DeleteEnrollment(c *fiber.Ctx) error {
	enrollment, err := ec.getOwned(c, policy.ActionDelete)
	if enrollment == nil {
		return err
	}

	if err := ec.DB.Delete(enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete enrollment")
	}

	return utils.NoContent(c)
}
