package routes_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCourse(t *testing.T, token, title string) uint {
	t.Helper()
	resp := request(t, "POST", "/api/courses/", map[string]interface{}{
		"title":       title,
		"description": "Тестовый курс",
		"start_date":  "2025-03-01",
		"end_date":    "2025-05-01",
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	result := decode(t, resp)
	return uint(result["id"].(float64))
}

func TestCreateAndGetCourse(t *testing.T) {
	token := staffToken(t)
	courseID := createCourse(t, token, "Django для начинающих")

	resp := request(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	assert.Equal(t, "Django для начинающих", result["title"])
	assert.Equal(t, "Тестовый курс", result["description"])
}

func TestCreateCourseRequiresStaff(t *testing.T) {
	token := registerUser(t, "coursestudent")

	resp := request(t, "POST", "/api/courses/", map[string]interface{}{
		"title":      "Чужой курс",
		"start_date": "2025-03-01",
		"end_date":   "2025-05-01",
	}, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreateCourseValidation(t *testing.T) {
	resp := request(t, "POST", "/api/courses/", map[string]interface{}{
		"description": "Без названия",
	}, staffToken(t))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateCourse(t *testing.T) {
	token := staffToken(t)
	courseID := createCourse(t, token, "Курс до правки")

	resp := request(t, "PUT", fmt.Sprintf("/api/courses/%d", courseID), map[string]interface{}{
		"title": "Курс после правки",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	assert.Equal(t, "Курс после правки", result["title"])
}

func TestDeleteCourseCascades(t *testing.T) {
	token := staffToken(t)
	courseID := createCourse(t, token, "Курс на удаление")

	resp := request(t, "POST", "/api/modules/", map[string]interface{}{
		"title":  "Модуль на удаление",
		"course": courseID,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	moduleID := uint(decode(t, resp)["id"].(float64))

	resp = request(t, "POST", "/api/materials/", map[string]interface{}{
		"title":  "Материал на удаление",
		"type":   "text",
		"module": moduleID,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	materialID := uint(decode(t, resp)["id"].(float64))

	resp = request(t, "DELETE", fmt.Sprintf("/api/courses/%d", courseID), nil, token)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = request(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = request(t, "GET", fmt.Sprintf("/api/modules/%d", moduleID), nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = request(t, "GET", fmt.Sprintf("/api/materials/%d", materialID), nil, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAnonymousCourseList(t *testing.T) {
	createCourse(t, staffToken(t), "Анонимный список")

	resp := request(t, "GET", "/courses", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := decodeList(t, resp)
	found := false
	for _, course := range courses {
		if course["title"] == "Анонимный список" {
			found = true
		}
		// В списке нет персональных полей.
		assert.NotContains(t, course, "progress")
		assert.NotContains(t, course, "favorite")
	}
	assert.True(t, found)
}

func TestCourseDetailByName(t *testing.T) {
	token := staffToken(t)
	createCourse(t, token, "Курс по имени")

	resp := request(t, "GET", "/course/"+url.PathEscape("Курс по имени"), nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	course, ok := result["course"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Курс по имени", course["title"])
	// Даты отрисованы русской локалью по умолчанию.
	assert.Equal(t, "1 марта 2025 г.", course["start_date"])
}

func TestCourseDetailUnknownName(t *testing.T) {
	resp := request(t, "GET", "/course/"+url.PathEscape("Нет такого"), nil, staffToken(t))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
