package middleware

import (
	"online_project/backend/config"
	"online_project/backend/models"
	"online_project/backend/policy"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const userLocal = "current_user"

// AuthMiddleware проверяет токен и кладёт пользователя в Locals.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		c.Locals(userLocal, &user)
		return c.Next()
	}
}

// StaffMiddleware пускает дальше только сотрудников. Ставится после
// AuthMiddleware.
func StaffMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !policy.CanManageCatalog(CurrentUser(c), policy.ActionUpdate) {
			return utils.Forbidden(c, "Staff access required")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthMiddleware, or nil
// on anonymous routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
