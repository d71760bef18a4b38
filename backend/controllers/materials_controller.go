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

type MaterialsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMaterialsController(db *gorm.DB, cfg *config.Config) *MaterialsController {
	return &MaterialsController{DB: db, Cfg: cfg}
}

type MaterialInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Type    string `json:"type" validate:"required,oneof=video text pdf"`
	Content string `json:"content"`
	Module  uint   `json:"module" validate:"required"`
}

func materialJSON(material models.Material) fiber.Map {
	return fiber.Map{
		"id":      material.ID,
		"module":  material.ModuleID,
		"title":   material.Title,
		"type":    material.Type,
		"content": material.Content,
	}
}

func (mc *MaterialsController) ListMaterials(c *fiber.Ctx) error {
	query := mc.DB.Order("id")
	if moduleID := c.QueryInt("module"); moduleID > 0 {
		query = query.Where("module_id = ?", moduleID)
	}

	var materials []models.Material
	if err := query.Find(&materials).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(materials))
	for _, material := range materials {
		result = append(result, materialJSON(material))
	}

	return c.JSON(result)
}

func (mc *MaterialsController) CreateMaterial(c *fiber.Ctx) error {
	var input MaterialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var module models.Module
	if err := mc.DB.First(&module, input.Module).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	material := models.Material{
		ModuleID: module.ID,
		Title:    input.Title,
		Type:     input.Type,
		Content:  input.Content,
	}

	if err := mc.DB.Create(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not create material")
	}

	return c.Status(fiber.StatusCreated).JSON(materialJSON(material))
}

func (mc *MaterialsController) GetMaterial(c *fiber.Ctx) error {
	materialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid material ID")
	}

	var material models.Material
	if err := mc.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Material not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(materialJSON(material))
}

func (mc *MaterialsController) UpdateMaterial(c *fiber.Ctx) error {
	materialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid material ID")
	}

	var material models.Material
	if err := mc.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Material not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input MaterialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		material.Title = input.Title
	}
	if input.Type != "" {
		if input.Type != models.MaterialVideo && input.Type != models.MaterialText && input.Type != models.MaterialPDF {
			return utils.ValidationError(c, map[string]string{"type": "Must be one of: video text pdf"})
		}
		material.Type = input.Type
	}
	if input.Content != "" {
		material.Content = input.Content
	}
	if input.Module != 0 && input.Module != material.ModuleID {
		var module models.Module
		if err := mc.DB.First(&module, input.Module).Error; err != nil {
			return utils.NotFound(c, "Module not found")
		}
		material.ModuleID = module.ID
	}

	if err := mc.DB.Save(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not update material")
	}

	return c.JSON(materialJSON(material))
}

func (mc *MaterialsController) DeleteMaterial(c *fiber.Ctx) error {
	materialID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid material ID")
	}

	var material models.Material
	if err := mc.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Material not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := mc.DB.Delete(&material).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete material")
	}

	return utils.NoContent(c)
}
