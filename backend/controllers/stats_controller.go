package controllers

import (
	"online_project/backend/config"
	"online_project/backend/models"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStatsController(db *gorm.DB, cfg *config.Config) *StatsController {
	return &StatsController{DB: db, Cfg: cfg}
}

// AdminStats обрабатывает страницу статистики для сотрудников.
func (sc *StatsController) AdminStats(c *fiber.Ctx) error {
	counts := fiber.Map{}
	for name, model := range map[string]interface{}{
		"users":       &models.User{},
		"courses":     &models.Course{},
		"modules":     &models.Module{},
		"materials":   &models.Material{},
		"enrollments": &models.Enrollment{},
		"progress":    &models.UserProgress{},
		"favorites":   &models.FavoriteCourse{},
		"surveys":     &models.Survey{},
	} {
		var count int64
		if err := sc.DB.Model(model).Count(&count).Error; err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		counts[name] = count
	}

	var avgProgress float64
	row := sc.DB.Model(&models.UserProgress{}).Select("COALESCE(AVG(progress), 0)").Row()
	if err := row.Scan(&avgProgress); err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"counts":       counts,
		"avg_progress": avgProgress,
	})
}
