package controllers

import (
	"errors"
	"strconv"

	"online_project/backend/config"
	"online_project/backend/models"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ModulesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewModulesController(db *gorm.DB, cfg *config.Config) *ModulesController {
	return &ModulesController{DB: db, Cfg: cfg}
}

type ModuleInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Course      uint   `json:"course" validate:"required"`
}

func moduleJSON(module models.Module) fiber.Map {
	m := fiber.Map{
		"id":          module.ID,
		"course":      module.CourseID,
		"title":       module.Title,
		"description": module.Description,
	}
	if module.Materials != nil {
		materials := make([]fiber.Map, 0, len(module.Materials))
		for _, material := range module.Materials {
			materials = append(materials, materialJSON(material))
		}
		m["materials"] = materials
	}
	return m
}

func (mc *ModulesController) ListModules(c *fiber.Ctx) error {
	query := mc.DB.Order("id")
	if courseID := c.QueryInt("course"); courseID > 0 {
		query = query.Where("course_id = ?", courseID)
	}

	var modules []models.Module
	if err := query.Find(&modules).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(modules))
	for _, module := range modules {
		result = append(result, moduleJSON(module))
	}

	return c.JSON(result)
}

func (mc *ModulesController) CreateModule(c *fiber.Ctx) error {
	var input ModuleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := mc.DB.First(&course, input.Course).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	module := models.Module{
		CourseID:    course.ID,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := mc.DB.Create(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not create module")
	}

	return c.Status(fiber.StatusCreated).JSON(moduleJSON(module))
}

func (mc *ModulesController) GetModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := mc.DB.Preload("Materials").First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(moduleJSON(module))
}

func (mc *ModulesController) UpdateModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := mc.DB.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input ModuleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		module.Title = input.Title
	}
	if input.Description != "" {
		module.Description = input.Description
	}
	if input.Course != 0 && input.Course != module.CourseID {
		var course models.Course
		if err := mc.DB.First(&course, input.Course).Error; err != nil {
			return utils.NotFound(c, "Course not found")
		}
		module.CourseID = course.ID
	}

	if err := mc.DB.Save(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not update module")
	}

	return c.JSON(moduleJSON(module))
}

// DeleteModule каскадно удаляет материалы модуля.
func (mc *ModulesController) DeleteModule(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := mc.DB.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", module.ID).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", module.ID).Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&module).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete module")
	}

	return utils.NoContent(c)
}
