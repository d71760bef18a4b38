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

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

func progressJSON(progress models.UserProgress) fiber.Map {
	return fiber.Map{
		"id":       progress.ID,
		"user":     progress.UserID,
		"course":   progress.CourseID,
		"module":   progress.ModuleID,
		"progress": progress.Progress,
	}
}

type ProgressInput struct {
	Course   uint `json:"course" validate:"required"`
	Module   uint `json:"module" validate:"required"`
	Progress int  `json:"progress" validate:"min=0,max=100"`
}

func (pc *ProgressController) ListProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := pc.DB.Order("id")
	if scope := policy.OwnedScope(user); scope != 0 {
		query = query.Where("user_id = ?", scope)
	}

	var rows []models.UserProgress
	if err := query.Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		result = append(result, progressJSON(row))
	}

	return c.JSON(result)
}

// CreateProgress записывает прогресс вызывающего; владелец в теле запроса
// игнорируется. Прямое API может ставить любое значение 0-100, правило
// «только вверх» действует лишь на пути теста.
func (pc *ProgressController) CreateProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := pc.DB.First(&course, input.Course).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var module models.Module
	if err := pc.DB.Where("id = ? AND course_id = ?", input.Module, course.ID).First(&module).Error; err != nil {
		return utils.NotFound(c, "Module not found in this course")
	}

	var existing models.UserProgress
	err := pc.DB.Where("user_id = ? AND course_id = ? AND module_id = ?", user.ID, course.ID, module.ID).
		First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Progress for this module already recorded")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	progress := models.UserProgress{
		UserID:   user.ID,
		CourseID: course.ID,
		ModuleID: module.ID,
		Progress: input.Progress,
	}

	if err := pc.DB.Create(&progress).Error; err != nil {
		return utils.Conflict(c, "Progress for this module already recorded")
	}

	return c.Status(fiber.StatusCreated).JSON(progressJSON(progress))
}

func (pc *ProgressController) getOwned(c *fiber.Ctx, action policy.Action) (*models.UserProgress, error) {
	user := middleware.CurrentUser(c)

	progressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid progress ID")
	}

	var progress models.UserProgress
	if err := pc.DB.First(&progress, progressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Progress not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	if !policy.CanAccessRecord(user, progress.UserID, action) {
		return nil, utils.Forbidden(c, "Permission denied")
	}

	return &progress, nil
}

func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	progress, err := pc.getOwned(c, policy.ActionRead)
	if progress == nil {
		return err
	}
	return c.JSON(progressJSON(*progress))
}

func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	progress, err := pc.getOwned(c, policy.ActionUpdate)
	if progress == nil {
		return err
	}

	var input struct {
		Progress *int `json:"progress"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return utils.ValidationError(c, map[string]string{"progress": "Must be between 0 and 100"})
		}
		progress.Progress = *input.Progress
	}

	if err := pc.DB.Save(progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	return c.JSON(progressJSON(*progress))
}

func (pc *ProgressController) DeleteProgress(c *fiber.Ctx) error {
	progress, err := pc.getOwned(c, policy.ActionDelete)
	if progress == nil {
		return err
	}

	if err := pc.DB.Delete(progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete progress")
	}

	return utils.NoContent(c)
}
