package controllers

import (
	"errors"

	"online_project/backend/config"
	"online_project/backend/middleware"
	"online_project/backend/models"
	"online_project/backend/quiz"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

func (qc *QuizController) findCourse(c *fiber.Ctx) (*models.Course, error) {
	name, err := decodeNameParam(c)
	if err != nil {
		return nil, utils.BadRequest(c, "Invalid course name")
	}

	var course models.Course
	if err := qc.DB.Where("title = ?", name).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Course not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}
	return &course, nil
}

// GetTest renders the question set for a course. A course without a bank is
// not an error.
func (qc *QuizController) GetTest(c *fiber.Ctx) error {
	course, err := qc.findCourse(c)
	if course == nil {
		return err
	}

	questions, ok := quiz.BankFor(course.Title)
	if !ok {
		return c.JSON(fiber.Map{
			"available": false,
			"message":   "Тест для этого курса пока недоступен",
		})
	}

	return c.JSON(fiber.Map{
		"available": true,
		"course":    course.Title,
		"questions": questions,
	})
}

// SubmitTest scores a complete submission and applies the best-score merge to
// the favorite and first-module progress rows.
func (qc *QuizController) SubmitTest(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, err := qc.findCourse(c)
	if course == nil {
		return err
	}

	questions, ok := quiz.BankFor(course.Title)
	if !ok {
		return c.JSON(fiber.Map{
			"available": false,
			"message":   "Тест для этого курса пока недоступен",
		})
	}

	var input struct {
		Answers map[string]string `json:"answers" form:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request")
	}

	if missing := quiz.Unanswered(questions, input.Answers); len(missing) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "Ответьте на все вопросы",
			"unanswered": missing,
		})
	}

	result := quiz.Evaluate(questions, input.Answers)
	pct := int(result.Percentage)

	// Избранное обновляется только если запись уже есть.
	var favorite models.FavoriteCourse
	err = qc.DB.Where("user_id = ? AND course_name = ?", user.ID, course.Title).First(&favorite).Error
	if err == nil {
		favorite.Progress = quiz.MergeProgress(favorite.Progress, pct)
		if err := qc.DB.Save(&favorite).Error; err != nil {
			return utils.InternalServerError(c, "Could not save progress")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	// Прогресс пишется в первый модуль курса; курс без модулей пропускаем.
	var firstModule models.Module
	err = qc.DB.Where("course_id = ?", course.ID).Order("id").First(&firstModule).Error
	if err == nil {
		var progress models.UserProgress
		err = qc.DB.Where("user_id = ? AND course_id = ? AND module_id = ?",
			user.ID, course.ID, firstModule.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.UserProgress{
				UserID:   user.ID,
				CourseID: course.ID,
				ModuleID: firstModule.ID,
				Progress: pct,
			}
			if err := qc.DB.Create(&progress).Error; err != nil {
				return utils.InternalServerError(c, "Could not save progress")
			}
		} else if err == nil {
			progress.Progress = quiz.MergeProgress(progress.Progress, pct)
			if err := qc.DB.Save(&progress).Error; err != nil {
				return utils.InternalServerError(c, "Could not save progress")
			}
		} else {
			return utils.InternalServerError(c, "Could not query database")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"course":     course.Title,
		"total":      result.Total,
		"correct":    result.Correct,
		"percentage": result.Percentage,
		"details":    result.Details,
	})
}
