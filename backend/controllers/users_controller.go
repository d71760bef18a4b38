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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

func userJSON(user models.User) fiber.Map {
	return fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	}
}

// ListUsers доступен только сотрудникам.
func (uc *UsersController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("id").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		result = append(result, userJSON(user))
	}

	return c.JSON(result)
}

// CreateUser is the REST registration endpoint; open like /api/auth/register
// but returns the created entity instead of a token.
func (uc *UsersController) CreateUser(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.Conflict(c, "Could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(userJSON(user))
}

func (uc *UsersController) getTarget(c *fiber.Ctx, action policy.Action) (*models.User, error) {
	caller := middleware.CurrentUser(c)

	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "User not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	if !policy.CanAccessRecord(caller, user.ID, action) {
		return nil, utils.Forbidden(c, "Permission denied")
	}

	return &user, nil
}

func (uc *UsersController) GetUser(c *fiber.Ctx) error {
	user, err := uc.getTarget(c, policy.ActionRead)
	if user == nil {
		return err
	}
	return c.JSON(userJSON(*user))
}

func (uc *UsersController) UpdateUser(c *fiber.Ctx) error {
	user, err := uc.getTarget(c, policy.ActionUpdate)
	if user == nil {
		return err
	}

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashed)
	}

	if err := uc.DB.Save(user).Error; err != nil {
		return utils.Conflict(c, "Could not update user")
	}

	return c.JSON(userJSON(*user))
}

func (uc *UsersController) DeleteUser(c *fiber.Ctx) error {
	user, err := uc.getTarget(c, policy.ActionDelete)
	if user == nil {
		return err
	}

	if err := uc.DB.Delete(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	return utils.NoContent(c)
}
