package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"online_project/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// surveyClient ходит по опросу, перенося cookie сессии между запросами.
type surveyClient struct {
	t       *testing.T
	token   string
	cookies []*http.Cookie
}

func newSurveyClient(t *testing.T, token string) *surveyClient {
	return &surveyClient{t: t, token: token}
}

func (sc *surveyClient) do(method, path string, body interface{}) *http.Response {
	sc.t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(sc.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", sc.token)
	for _, cookie := range sc.cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(sc.t, err)
	if cookies := resp.Cookies(); len(cookies) > 0 {
		sc.cookies = cookies
	}
	return resp
}

func TestSurveyFullRun(t *testing.T) {
	token := registerUser(t, "surveyuser")
	user := userByName(t, "surveyuser")
	client := newSurveyClient(t, token)

	resp := client.do("GET", "/survey/backend", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	assert.Equal(t, "backend", result["track"])
	assert.Equal(t, float64(10), result["total"])
	assert.Equal(t, float64(1), result["position"])

	question, ok := result["question"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "q1", question["id"])

	var last *http.Response
	for i := 0; i < 10; i++ {
		last = client.do("POST", "/survey/backend", map[string]interface{}{
			"question_id": question["id"],
			"score":       3,
		})
		if i < 9 {
			require.Equal(t, fiber.StatusOK, last.StatusCode)
			step := decode(t, last)
			question, ok = step["question"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, float64(i+2), step["position"])
		}
	}

	require.Equal(t, fiber.StatusFound, last.StatusCode)
	expected := "/course/" + url.PathEscape("Backend-разработка с Python")
	assert.Equal(t, expected, last.Header.Get("Location"))

	// Запись опроса сохранена, сумма ответов соответствует максимуму.
	var record models.Survey
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)
	require.NotNil(t, record.CourseID)
	assert.Len(t, record.Answers, 10)

	// JSONMap отдаёт числа как json.Number.
	var sum float64
	for _, score := range record.Answers {
		number, ok := score.(json.Number)
		require.True(t, ok)
		value, err := number.Float64()
		require.NoError(t, err)
		sum += value
	}
	assert.Equal(t, 30.0, sum)

	// Рекомендованный курс создан с сидовым администратором в роли преподавателя.
	var course models.Course
	require.NoError(t, db.First(&course, *record.CourseID).Error)
	assert.Equal(t, "Backend-разработка с Python", course.Title)

	admin := userByName(t, "admin")
	assert.Equal(t, admin.ID, course.InstructorID)
	assert.True(t, course.EndDate.After(course.StartDate))
}

func TestSurveyUnknownTrack(t *testing.T) {
	token := registerUser(t, "surveylost")

	resp := request(t, "GET", "/survey/mobile", nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSurveySubmitWithoutStart(t *testing.T) {
	token := registerUser(t, "surveycold")

	resp := request(t, "POST", "/survey/backend", map[string]interface{}{
		"question_id": "q1",
		"score":       3,
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSurveyRejectsBadAnswer(t *testing.T) {
	token := registerUser(t, "surveystrict")
	client := newSurveyClient(t, token)

	resp := client.do("GET", "/survey/devops", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Ответ не на текущий вопрос.
	resp = client.do("POST", "/survey/devops", map[string]interface{}{
		"question_id": "q5",
		"score":       2,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Оценка вне шкалы.
	resp = client.do("POST", "/survey/devops", map[string]interface{}{
		"question_id": "q1",
		"score":       5,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Корректный ответ после отказов принимается с того же места.
	resp = client.do("POST", "/survey/devops", map[string]interface{}{
		"question_id": "q1",
		"score":       1,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decode(t, resp)["position"])
}

func TestSurveyTrackSwitchResetsState(t *testing.T) {
	token := registerUser(t, "surveyswitch")
	client := newSurveyClient(t, token)

	resp := client.do("GET", "/survey/frontend", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = client.do("POST", "/survey/frontend", map[string]interface{}{
		"question_id": "q1",
		"score":       2,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Переход на другой трек начинает опрос заново.
	resp = client.do("GET", "/survey/ai_ml", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decode(t, resp)["position"])

	// Ответ по прежнему треку теперь отклоняется.
	resp = client.do("POST", "/survey/frontend", map[string]interface{}{
		"question_id": "q2",
		"score":       2,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
