package courseValidator

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runValidator(t *testing.T, handler fiber.Handler, body string) (int, map[string]interface{}, bool) {
	t.Helper()
	passed := false
	app := fiber.New()
	app.Post("/", handler, func(c *fiber.Ctx) error {
		passed = true
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	json.Unmarshal(raw, &parsed)
	return resp.StatusCode, parsed, passed
}

func TestCreateCourseRequiresTitle(t *testing.T) {
	status, body, passed := runValidator(t, CreateCourse(), `{"price": 99}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "Title")
}

func TestCreateCourseValidPayloadPasses(t *testing.T) {
	status, _, passed := runValidator(t, CreateCourse(), `{"title":"Go Basics","price":499,"is_free":false}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, passed)
}

func TestCreateCourseRejectsNegativePrice(t *testing.T) {
	status, _, passed := runValidator(t, CreateCourse(), `{"title":"Go Basics","price":-1}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)
}

func TestUpdateCourseRequiresID(t *testing.T) {
	status, body, passed := runValidator(t, UpdateCourse(), `{"title":"Go Basics"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "id")
}

func TestDeleteRecordRequiresConfirmation(t *testing.T) {
	status, body, passed := runValidator(t, DeleteRecord(), `{"id":"c1"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "confirm")

	status, _, passed = runValidator(t, DeleteRecord(), `{"id":"c1","confirm":true}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, passed)
}

func TestDeleteRecordRequiresID(t *testing.T) {
	status, _, passed := runValidator(t, DeleteRecord(), `{"confirm":true}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)
}

func TestSaveModuleRequiresParent(t *testing.T) {
	status, _, passed := runValidator(t, SaveModule(), `{"module_title":"Intro"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)

	// Either an existing module id or a course id will do.
	status, _, passed = runValidator(t, SaveModule(), `{"module_title":"Intro","course_id":"c1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, passed)

	status, _, passed = runValidator(t, SaveModule(), `{"module_title":"Intro","module_id":"m1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, passed)
}

func TestSaveVideoRequiresParent(t *testing.T) {
	status, _, passed := runValidator(t, SaveVideo(), `{"title":"Lesson 1"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.False(t, passed)

	status, _, passed = runValidator(t, SaveVideo(), `{"title":"Lesson 1","module_id":"m1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, passed)
}
