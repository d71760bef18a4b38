package controllers

import (
	"errors"
	"strconv"
	"time"

	"online_project/backend/config"
	"online_project/backend/middleware"
	"online_project/backend/models"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

type CourseInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Instructor  uint   `json:"instructor"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func courseJSON(course models.Course) fiber.Map {
	return fiber.Map{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"start_date":  course.StartDate,
		"end_date":    course.EndDate,
		"instructor":  course.InstructorID,
	}
}

// ListCourses is open to anonymous callers; the listing carries no
// personalized fields.
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Order("id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseJSON(course))
	}

	return c.JSON(result)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return utils.ValidationError(c, map[string]string{"start_date": "Invalid date"})
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return utils.ValidationError(c, map[string]string{"end_date": "Invalid date"})
	}

	instructorID := input.Instructor
	if instructorID == 0 {
		instructorID = user.ID
	} else {
		var instructor models.User
		if err := cc.DB.First(&instructor, instructorID).Error; err != nil {
			return utils.NotFound(c, "Instructor not found")
		}
	}

	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		StartDate:    start,
		EndDate:      end,
		InstructorID: instructorID,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.Conflict(c, "Could not create course")
	}

	return c.Status(fiber.StatusCreated).JSON(courseJSON(course))
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(courseJSON(course))
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.StartDate != "" {
		start, err := parseDate(input.StartDate)
		if err != nil {
			return utils.ValidationError(c, map[string]string{"start_date": "Invalid date"})
		}
		course.StartDate = start
	}
	if input.EndDate != "" {
		end, err := parseDate(input.EndDate)
		if err != nil {
			return utils.ValidationError(c, map[string]string{"end_date": "Invalid date"})
		}
		course.EndDate = end
	}
	if input.Instructor != 0 {
		var instructor models.User
		if err := cc.DB.First(&instructor, input.Instructor).Error; err != nil {
			return utils.NotFound(c, "Instructor not found")
		}
		course.InstructorID = input.Instructor
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.Conflict(c, "Could not update course")
	}

	return c.JSON(courseJSON(course))
}

// DeleteCourse removes the course and its module/material tree in one
// transaction, so the cascade does not depend on driver-level foreign keys.
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&models.Module{}).Where("course_id = ?", course.ID).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&models.Material{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.Module{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.UserProgress{}).Error; err != nil {
			return err
		}
		// Surveys survive the course: the recommendation is nulled out.
		if err := tx.Model(&models.Survey{}).Where("course_id = ?", course.ID).
			Update("course_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.NoContent(c)
}

// CourseDetail обрабатывает страницу курса по названию, с модулями и
// материалами.
func (cc *CoursesController) CourseDetail(c *fiber.Ctx) error {
	name, err := decodeNameParam(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid course name")
	}

	var course models.Course
	if err := cc.DB.Preload("Modules.Materials").Where("title = ?", name).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	locale := c.Query("locale", cc.Cfg.DateLocale)

	modules := make([]fiber.Map, 0, len(course.Modules))
	for _, module := range course.Modules {
		modules = append(modules, moduleJSON(module))
	}

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"start_date":  utils.FormatDate(course.StartDate, locale),
			"end_date":    utils.FormatDate(course.EndDate, locale),
			"instructor":  course.InstructorID,
			"modules":     modules,
		},
	})
}
