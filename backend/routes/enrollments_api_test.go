package routes_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentLifecycle(t *testing.T) {
	staff := staffToken(t)
	courseID := createCourse(t, staff, "Курс для записи")
	token := registerUser(t, "enrollee")

	resp := request(t, "POST", "/api/enrollments/", map[string]interface{}{
		"course": courseID,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, "active", created["status"])
	enrollmentID := uint(created["id"].(float64))

	// Наружу уходит только snake_case-проекция, без полей gorm.Model.
	assert.NotContains(t, created, "ID")
	assert.NotContains(t, created, "CreatedAt")
	assert.NotContains(t, created, "UpdatedAt")
	assert.NotContains(t, created, "DeletedAt")

	resp = request(t, "PUT", fmt.Sprintf("/api/enrollments/%d", enrollmentID), map[string]interface{}{
		"status": "completed",
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", decode(t, resp)["status"])

	resp = request(t, "DELETE", fmt.Sprintf("/api/enrollments/%d", enrollmentID), nil, token)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDuplicateEnrollmentConflict(t *testing.T) {
	staff := staffToken(t)
	courseID := createCourse(t, staff, "Курс с дублем записи")
	token := registerUser(t, "doubleenrollee")

	resp := request(t, "POST", "/api/enrollments/", map[string]interface{}{
		"course": courseID,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = request(t, "POST", "/api/enrollments/", map[string]interface{}{
		"course": courseID,
	}, token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestEnrollmentUnknownCourse(t *testing.T) {
	token := registerUser(t, "lostenrollee")

	resp := request(t, "POST", "/api/enrollments/", map[string]interface{}{
		"course": 999999,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEnrollmentOwnership(t *testing.T) {
	staff := staffToken(t)
	courseID := createCourse(t, staff, "Курс о приватности записи")

	ownerToken := registerUser(t, "enrollowner")
	otherToken := registerUser(t, "enrollother")

	resp := request(t, "POST", "/api/enrollments/", map[string]interface{}{
		"course": courseID,
	}, ownerToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	enrollmentID := uint(decode(t, resp)["id"].(float64))

	// Чужая запись недоступна обычному пользователю.
	resp = request(t, "GET", fmt.Sprintf("/api/enrollments/%d", enrollmentID), nil, otherToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Сотрудник видит всё.
	resp = request(t, "GET", fmt.Sprintf("/api/enrollments/%d", enrollmentID), nil, staff)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Список другого пользователя не содержит чужих записей.
	resp = request(t, "GET", "/api/enrollments/", nil, otherToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, enrollment := range decodeList(t, resp) {
		assert.NotEqual(t, float64(enrollmentID), enrollment["id"])
	}
}

func TestProgressConflictAndBounds(t *testing.T) {
	staff := staffToken(t)
	courseID := createCourse(t, staff, "Курс для прогресса")

	resp := request(t, "POST", "/api/modules/", map[string]interface{}{
		"title":  "Модуль прогресса",
		"course": courseID,
	}, staff)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	moduleID := uint(decode(t, resp)["id"].(float64))

	token := registerUser(t, "progressuser")

	resp = request(t, "POST", "/api/progress/", map[string]interface{}{
		"course":   courseID,
		"module":   moduleID,
		"progress": 40,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Повторная строка по тому же (user, course, module) - конфликт.
	resp = request(t, "POST", "/api/progress/", map[string]interface{}{
		"course":   courseID,
		"module":   moduleID,
		"progress": 80,
	}, token)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Значение вне 0-100 отклоняется.
	resp = request(t, "POST", "/api/progress/", map[string]interface{}{
		"course":   courseID,
		"module":   moduleID,
		"progress": 150,
	}, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProgressModuleMustBelongToCourse(t *testing.T) {
	staff := staffToken(t)
	courseID := createCourse(t, staff, "Курс А для прогресса")
	otherCourseID := createCourse(t, staff, "Курс Б для прогресса")

	resp := request(t, "POST", "/api/modules/", map[string]interface{}{
		"title":  "Модуль курса Б",
		"course": otherCourseID,
	}, staff)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	moduleID := uint(decode(t, resp)["id"].(float64))

	token := registerUser(t, "mismatchuser")
	resp = request(t, "POST", "/api/progress/", map[string]interface{}{
		"course":   courseID,
		"module":   moduleID,
		"progress": 10,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
