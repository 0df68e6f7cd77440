package util

import (
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/internhub/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello resume"))

	mime, data, err := ParseDataURI("data:text/plain;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, "hello resume", string(data))

	mime, _, err = ParseDataURI("data:Application/PDF;name=cv.pdf;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
}

func TestParseDataURI_Invalid(t *testing.T) {
	for _, uri := range []string{
		"",
		"text/plain;base64,aGk=",
		"data:text/plain,hi",
		"data:;base64,aGk=",
		"data:text/plain;base64,not base64!",
	} {
		_, _, err := ParseDataURI(uri)
		assert.ErrorIs(t, err, ErrInvalidDataURI, uri)
	}
}

func TestExtractText_Plain(t *testing.T) {
	text, err := ExtractText(MIMEText, []byte("  Ada Lovelace\nGo developer \n"))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nGo developer", text)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, MIMEPDF, DetectMIME([]byte("%PDF-1.7\n%binary")))
	assert.Equal(t, MIMEText, DetectMIME([]byte("plain resume text")))
	assert.True(t, IsSupportedResumeType(MIMEDOCX))
	assert.False(t, IsSupportedResumeType("image/png"))
}

func TestValidateStruct_FormError(t *testing.T) {
	err := ValidateStruct(model.StudentProfile{Name: "", Email: "not-an-email"})

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "is required", formErr.Errors["name"])
	assert.Equal(t, "must be a valid email", formErr.Errors["email"])
}

func TestValidateStruct_OK(t *testing.T) {
	assert.NoError(t, ValidateStruct(model.StudentProfile{Name: "Ada", Email: "ada@example.com"}))
}

func decodeEnvelope(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSuccessResponse_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return SuccessResponse(c, SuccessResponseFormat{Message: "ok", Data: "x"})
	})

	status, body := decodeEnvelope(t, app, "/")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "x", body["data"])
	assert.NotContains(t, body, "meta")
	assert.NotContains(t, body, "pagination")
}

func TestFormErrorResponse_Details(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FormErrorResponse(c, NewFormError("validation failed", map[string]string{"title": "is required"}))
	})

	status, body := decodeEnvelope(t, app, "/")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, map[string]any{"title": "is required"}, body["details"])
}
