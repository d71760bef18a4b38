package controllers

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"online_project/backend/config"
	"online_project/backend/middleware"
	"online_project/backend/models"
	"online_project/backend/policy"
	"online_project/backend/survey"
	"online_project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const surveyStateKey = "survey_state"

type SurveysController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions *session.Store
}

func NewSurveysController(db *gorm.DB, cfg *config.Config, sessions *session.Store) *SurveysController {
	return &SurveysController{DB: db, Cfg: cfg, Sessions: sessions}
}

// StartSurvey начинает или продолжает прохождение опроса и отдаёт текущий
// вопрос. Новый трек сбрасывает прежнее состояние.
func (sc *SurveysController) StartSurvey(c *fiber.Ctx) error {
	track := c.Params("track")
	questions, ok := survey.Questions(track)
	if !ok {
		return utils.NotFound(c, "Unknown survey track")
	}

	sess, err := sc.Sessions.Get(c)
	if err != nil {
		return utils.InternalServerError(c, "Could not open session")
	}

	state := sc.loadState(sess)
	if state == nil || state.Track != track {
		state = survey.NewState(track)
		if err := sc.saveState(sess, state); err != nil {
			return utils.InternalServerError(c, "Could not save session")
		}
	}

	question, ok := state.Current(questions)
	if !ok {
		// Незавершённый хвост от прежней версии банка: начинаем заново.
		state = survey.NewState(track)
		if err := sc.saveState(sess, state); err != nil {
			return utils.InternalServerError(c, "Could not save session")
		}
		question, _ = state.Current(questions)
	}

	return c.JSON(fiber.Map{
		"track":    track,
		"question": question,
		"position": state.Index + 1,
		"total":    len(questions),
	})
}

// SubmitSurveyAnswer записывает один ответ и продвигает прохождение. После
// последнего вопроса создаётся запись Survey и выполняется редирект на
// рекомендованный курс.
func (sc *SurveysController) SubmitSurveyAnswer(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	track := c.Params("track")
	questions, ok := survey.Questions(track)
	if !ok {
		return utils.NotFound(c, "Unknown survey track")
	}

	sess, err := sc.Sessions.Get(c)
	if err != nil {
		return utils.InternalServerError(c, "Could not open session")
	}

	state := sc.loadState(sess)
	if state == nil || state.Track != track {
		return utils.BadRequest(c, "Survey not started")
	}

	var input struct {
		QuestionID string `json:"question_id" form:"question_id"`
		Score      int    `json:"score" form:"score"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request")
	}

	question, ok := state.Current(questions)
	if !ok {
		return utils.BadRequest(c, "Survey already completed")
	}
	if input.QuestionID != question.ID {
		return utils.ValidationError(c, map[string]string{"question_id": "Unexpected question"})
	}
	if !survey.ValidScore(input.Score) {
		return utils.ValidationError(c, map[string]string{"score": "Must be between 0 and 3"})
	}

	state.Record(question.ID, input.Score)

	if !state.Done(questions) {
		if err := sc.saveState(sess, state); err != nil {
			return utils.InternalServerError(c, "Could not save session")
		}
		next, _ := state.Current(questions)
		return c.JSON(fiber.Map{
			"track":    track,
			"question": next,
			"position": state.Index + 1,
			"total":    len(questions),
		})
	}

	course, err := sc.resolveCourse(track, user)
	if err != nil {
		return utils.InternalServerError(c, "Could not resolve recommended course")
	}

	answers := datatypes.JSONMap{}
	for id, score := range state.Answers {
		answers[id] = score
	}
	record := models.Survey{
		UserID:   user.ID,
		Answers:  answers,
		CourseID: &course.ID,
	}
	if err := sc.DB.Create(&record).Error; err != nil {
		return utils.InternalServerError(c, "Could not save survey")
	}

	sess.Delete(surveyStateKey)
	if err := sess.Save(); err != nil {
		return utils.InternalServerError(c, "Could not save session")
	}

	return c.Redirect("/course/"+url.PathEscape(course.Title), fiber.StatusFound)
}

// resolveCourse находит курс для трека, при отсутствии создаёт его: срок 90
// дней, преподаватель — любой сотрудник, иначе текущий пользователь.
func (sc *SurveysController) resolveCourse(track string, user *models.User) (*models.Course, error) {
	title, ok := survey.RecommendedCourse(track)
	if !ok {
		return nil, errors.New("no course for track")
	}

	var course models.Course
	err := sc.DB.Where("title = ?", title).First(&course).Error
	if err == nil {
		return &course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	instructorID := user.ID
	var staff models.User
	if err := sc.DB.Where("role = ?", models.RoleStaff).Order("id").First(&staff).Error; err == nil {
		instructorID = staff.ID
	}

	course = models.Course{
		Title:        title,
		Description:  "Рекомендованный курс по итогам опроса",
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(0, 0, 90),
		InstructorID: instructorID,
	}
	if err := sc.DB.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (sc *SurveysController) loadState(sess *session.Session) *survey.State {
	raw, ok := sess.Get(surveyStateKey).(string)
	if !ok || raw == "" {
		return nil
	}
	state, err := survey.DecodeState(raw)
	if err != nil {
		return nil
	}
	return state
}

func (sc *SurveysController) saveState(sess *session.Session, state *survey.State) error {
	raw, err := state.Encode()
	if err != nil {
		return err
	}
	sess.Set(surveyStateKey, raw)
	return sess.Save()
}

// --- REST ---

func surveyJSON(record models.Survey) fiber.Map {
	m := fiber.Map{
		"id":      record.ID,
		"user":    record.UserID,
		"answers": record.Answers,
	}
	if record.CourseID != nil {
		m["recommended_course"] = *record.CourseID
	} else {
		m["recommended_course"] = nil
	}
	return m
}

type SurveyInput struct {
	Answers map[string]int `json:"answers" validate:"required"`
	Course  uint           `json:"course"`
}

func (sc *SurveysController) ListSurveys(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := sc.DB.Order("id")
	if scope := policy.OwnedScope(user); scope != 0 {
		query = query.Where("user_id = ?", scope)
	}

	var surveys []models.Survey
	if err := query.Find(&surveys).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(surveys))
	for _, record := range surveys {
		result = append(result, surveyJSON(record))
	}

	return c.JSON(result)
}

func (sc *SurveysController) CreateSurvey(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input SurveyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	record := models.Survey{
		UserID:  user.ID,
		Answers: datatypes.JSONMap{},
	}
	for id, score := range input.Answers {
		record.Answers[id] = score
	}

	if input.Course != 0 {
		var course models.Course
		if err := sc.DB.First(&course, input.Course).Error; err != nil {
			return utils.NotFound(c, "Course not found")
		}
		record.CourseID = &course.ID
	}

	if err := sc.DB.Create(&record).Error; err != nil {
		return utils.InternalServerError(c, "Could not save survey")
	}

	return c.Status(fiber.StatusCreated).JSON(surveyJSON(record))
}

func (sc *SurveysController) GetSurvey(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	surveyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid survey ID")
	}

	var record models.Survey
	if err := sc.DB.First(&record, surveyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Survey not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !policy.CanAccessRecord(user, record.UserID, policy.ActionRead) {
		return utils.Forbidden(c, "Permission denied")
	}

	return c.JSON(surveyJSON(record))
}

// UpdateSurvey always refuses: survey rows are append-only.
func (sc *SurveysController) UpdateSurvey(c *fiber.Ctx) error {
	return utils.Error(c, fiber.StatusMethodNotAllowed, "Surveys are append-only")
}

func (sc *SurveysController) DeleteSurvey(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	surveyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid survey ID")
	}

	var record models.Survey
	if err := sc.DB.First(&record, surveyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Survey not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !policy.CanAccessRecord(user, record.UserID, policy.ActionDelete) {
		return utils.Forbidden(c, "Permission denied")
	}

	if err := sc.DB.Delete(&record).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete survey")
	}

	return utils.NoContent(c)
}
