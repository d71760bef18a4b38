package routes_test

import (
	"fmt"
	"testing"

	"online_project/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func favoriteCount(t *testing.T, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.FavoriteCourse{}).
		Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestToggleFavorite(t *testing.T) {
	token := registerUser(t, "favtoggler")
	user := userByName(t, "favtoggler")

	resp := request(t, "POST", "/toggle_favorite", map[string]string{
		"course_name": pythonCourse,
		"action":      "add",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "added", decode(t, resp)["status"])
	assert.Equal(t, int64(1), favoriteCount(t, user.ID))

	// Повторное добавление не создаёт дубликат.
	resp = request(t, "POST", "/toggle_favorite", map[string]string{
		"course_name": pythonCourse,
		"action":      "add",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "added", decode(t, resp)["status"])
	assert.Equal(t, int64(1), favoriteCount(t, user.ID))

	resp = request(t, "POST", "/toggle_favorite", map[string]string{
		"course_name": pythonCourse,
		"action":      "remove",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "removed", decode(t, resp)["status"])
	assert.Equal(t, int64(0), favoriteCount(t, user.ID))
}

func TestToggleFavoriteInvalidRequest(t *testing.T) {
	token := registerUser(t, "favinvalid")
	user := userByName(t, "favinvalid")

	resp := request(t, "POST", "/toggle_favorite", map[string]string{
		"course_name": pythonCourse,
		"action":      "archive",
	}, token)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", decode(t, resp)["status"])

	resp = request(t, "POST", "/toggle_favorite", map[string]string{
		"action": "add",
	}, token)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", decode(t, resp)["status"])

	// Некорректные запросы ничего не меняют.
	assert.Equal(t, int64(0), favoriteCount(t, user.ID))
}

func TestFavoritesPage(t *testing.T) {
	token := registerUser(t, "favpage")

	resp := request(t, "POST", "/toggle_favorite", map[string]string{
		"course_name": webCourse,
		"action":      "add",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, "GET", "/favorites", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	favorites, ok := result["favorites"].([]interface{})
	require.True(t, ok)
	require.Len(t, favorites, 1)

	entry, ok := favorites[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, webCourse, entry["course_name"])
	assert.Equal(t, float64(0), entry["progress"])
}

func TestFavoriteRESTLifecycle(t *testing.T) {
	token := registerUser(t, "favrest")

	resp := request(t, "POST", "/api/favorites/", map[string]interface{}{
		"course_name": pythonCourse,
		"progress":    10,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	favoriteID := uint(created["id"].(float64))

	// Дубликат отклоняется.
	resp = request(t, "POST", "/api/favorites/", map[string]interface{}{
		"course_name": pythonCourse,
	}, token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = request(t, "PUT", fmt.Sprintf("/api/favorites/%d", favoriteID), map[string]interface{}{
		"progress": 40,
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(40), decode(t, resp)["progress"])

	resp = request(t, "PUT", fmt.Sprintf("/api/favorites/%d", favoriteID), map[string]interface{}{
		"progress": 120,
	}, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// Чужая запись недоступна.
	other := registerUser(t, "favstranger")
	resp = request(t, "GET", fmt.Sprintf("/api/favorites/%d", favoriteID), nil, other)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, "DELETE", fmt.Sprintf("/api/favorites/%d", favoriteID), nil, token)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestSurveyRESTAppendOnly(t *testing.T) {
	token := registerUser(t, "surveyrest")

	resp := request(t, "POST", "/api/surveys/", map[string]interface{}{
		"answers": map[string]int{"q1": 2, "q2": 1},
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	surveyID := uint(created["id"].(float64))

	resp = request(t, "GET", fmt.Sprintf("/api/surveys/%d", surveyID), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = request(t, "PUT", fmt.Sprintf("/api/surveys/%d", surveyID), map[string]interface{}{
		"answers": map[string]int{"q1": 3},
	}, token)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)

	// Привязка к несуществующему курсу отклоняется.
	resp = request(t, "POST", "/api/surveys/", map[string]interface{}{
		"answers": map[string]int{"q1": 2},
		"course":  99999,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Пользователь видит только свои опросы.
	other := registerUser(t, "surveypeek")
	resp = request(t, "GET", fmt.Sprintf("/api/surveys/%d", surveyID), nil, other)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, "GET", "/api/surveys/", nil, other)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))
}
