package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"ai-writing-be/internal/editor"
	"ai-writing-be/internal/history"
	"ai-writing-be/internal/session"
	"ai-writing-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"fiber error", fiber.NewError(fiber.StatusUnprocessableEntity, "bad body"), fiber.StatusUnprocessableEntity},
		{"missing suggestion", session.ErrSuggestionNotFound, fiber.StatusNotFound},
		{"wrapped snapshot", fmt.Errorf("restore: %w", history.ErrSnapshotNotFound), fiber.StatusNotFound},
		{"no selection", session.ErrNoSelection, fiber.StatusBadRequest},
		{"stale selection", editor.ErrSelectionStale, fiber.StatusConflict},
		{"closed", session.ErrClosed, fiber.StatusServiceUnavailable},
		{"rate limited", llm.NewError("gemini", llm.KindRateLimited, errors.New("429")), fiber.StatusTooManyRequests},
		{"provider down", llm.NewError("ollama", llm.KindUnavailable, errors.New("refused")), fiber.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Title string `json:"title" validate:"required,max=5"`
	}

	assert.NoError(t, ValidateRequest(req{Title: "ok"}))

	err := ValidateRequest(req{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "is required", ve.Fields["req.Title"])

	err = ValidateRequest(req{Title: "too long"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["req.Title"], "at most 5")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return session.ErrDocumentNotFound
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("database exploded")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.False(t, body.Success)
	assert.Equal(t, session.ErrDocumentNotFound.Error(), body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", decode(t, resp.Body).Message)
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"

	app := fiber.New()
	app.Use(JwtMiddleware(secret))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString(fmt.Sprint(ctx.Locals("user_id")))
	})

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "writer-1"}).SignedString([]byte(secret))
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "writer-1", string(b))
	})

	t.Run("query token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/?token="+signed, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "x"}).SignedString([]byte("other"))
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestJwtMiddlewareDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(JwtMiddleware(""))
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func decode(t *testing.T, r io.Reader) Response[any] {
	t.Helper()
	var body Response[any]
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}
