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

type FavoritesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFavoritesController(db *gorm.DB, cfg *config.Config) *FavoritesController {
	return &FavoritesController{DB: db, Cfg: cfg}
}

func favoriteJSON(favorite models.FavoriteCourse) fiber.Map {
	return fiber.Map{
		"id":          favorite.ID,
		"user":        favorite.UserID,
		"course_name": favorite.CourseName,
		"progress":    favorite.Progress,
	}
}

type FavoriteInput struct {
	CourseName string `json:"course_name" validate:"required,max=255"`
	Progress   int    `json:"progress" validate:"min=0,max=100"`
}

func (fc *FavoritesController) ListFavorites(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := fc.DB.Order("id")
	if scope := policy.OwnedScope(user); scope != 0 {
		query = query.Where("user_id = ?", scope)
	}

	var favorites []models.FavoriteCourse
	if err := query.Find(&favorites).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(favorites))
	for _, favorite := range favorites {
		result = append(result, favoriteJSON(favorite))
	}

	return c.JSON(result)
}

func (fc *FavoritesController) CreateFavorite(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input FavoriteInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var existing models.FavoriteCourse
	err := fc.DB.Where("user_id = ? AND course_name = ?", user.ID, input.CourseName).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Course already in favorites")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	favorite := models.FavoriteCourse{
		UserID:     user.ID,
		CourseName: input.CourseName,
		Progress:   input.Progress,
	}

	if err := fc.DB.Create(&favorite).Error; err != nil {
		return utils.Conflict(c, "Course already in favorites")
	}

	return c.Status(fiber.StatusCreated).JSON(favoriteJSON(favorite))
}

func (fc *FavoritesController) getOwned(c *fiber.Ctx, action policy.Action) (*models.FavoriteCourse, error) {
	user := middleware.CurrentUser(c)

	favoriteID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid favorite ID")
	}

	var favorite models.FavoriteCourse
	if err := fc.DB.First(&favorite, favoriteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Favorite not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	if !policy.CanAccessRecord(user, favorite.UserID, action) {
		return nil, utils.Forbidden(c, "Permission denied")
	}

	return &favorite, nil
}

func (fc *FavoritesController) GetFavorite(c *fiber.Ctx) error {
	favorite, err := fc.getOwned(c, policy.ActionRead)
	if favorite == nil {
		return err
	}
	return c.JSON(favoriteJSON(*favorite))
}

func (fc *FavoritesController) UpdateFavorite(c *fiber.Ctx) error {
	favorite, err := fc.getOwned(c, policy.ActionUpdate)
	if favorite == nil {
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
		favorite.Progress = *input.Progress
	}

	if err := fc.DB.Save(favorite).Error; err != nil {
		return utils.InternalServerError(c, "Could not update favorite")
	}

	return c.JSON(favoriteJSON(*favorite))
}

func (fc *FavoritesController) DeleteFavorite(c *fiber.Ctx) error {
	favorite, err := fc.getOwned(c, policy.ActionDelete)
	if favorite == nil {
		return err
	}

	if err := fc.DB.Delete(favorite).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete favorite")
	}

	return utils.NoContent(c)
}

// ToggleFavorite обрабатывает кнопку «в избранное» на странице курса.
// Повторное добавление уже избранного курса не ошибка.
func (fc *FavoritesController) ToggleFavorite(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input struct {
		CourseName string `json:"course_name" form:"course_name"`
		Action     string `json:"action" form:"action"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request")
	}

	if input.CourseName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error"})
	}

	switch input.Action {
	case "add":
		var favorite models.FavoriteCourse
		err := fc.DB.Where("user_id = ? AND course_name = ?", user.ID, input.CourseName).
			First(&favorite).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			favorite = models.FavoriteCourse{UserID: user.ID, CourseName: input.CourseName}
			if err := fc.DB.Create(&favorite).Error; err != nil {
				return utils.InternalServerError(c, "Could not add favorite")
			}
		} else if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		return c.JSON(fiber.Map{"status": "added"})
	case "remove":
		if err := fc.DB.Where("user_id = ? AND course_name = ?", user.ID, input.CourseName).
			Delete(&models.FavoriteCourse{}).Error; err != nil {
			return utils.InternalServerError(c, "Could not remove favorite")
		}
		return c.JSON(fiber.Map{"status": "removed"})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error"})
	}
}

// FavoritesPage отдаёт список избранного с прогрессом для страницы.
func (fc *FavoritesController) FavoritesPage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var favorites []models.FavoriteCourse
	if err := fc.DB.Where("user_id = ?", user.ID).Order("id").Find(&favorites).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(favorites))
	for _, favorite := range favorites {
		result = append(result, fiber.Map{
			"course_name": favorite.CourseName,
			"progress":    favorite.Progress,
		})
	}

	return c.JSON(fiber.Map{"favorites": result})
}
