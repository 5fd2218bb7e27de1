package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	return app
}

func decodeError(t *testing.T, res *http.Response) ErrorBody {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out ErrorBody
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestErrorHandler_MapsKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantMsg    string
	}{
		{name: "validation", err: apperror.Validation("title must not be blank"), wantStatus: 400, wantType: "validation", wantMsg: "title must not be blank"},
		{name: "not found", err: apperror.NotFound("topic not found"), wantStatus: 404, wantType: "not_found", wantMsg: "topic not found"},
		{name: "forbidden", err: apperror.Forbidden(), wantStatus: 403, wantType: "authorization", wantMsg: "access denied"},
		{name: "provider", err: apperror.Provider("content generation failed", errors.New("status 500")), wantStatus: 502, wantType: "provider", wantMsg: "content generation failed"},
		{name: "plain", err: errors.New("db exploded"), wantStatus: 500, wantType: "internal", wantMsg: "internal server error"},
		{name: "fiber", err: fiber.ErrUnprocessableEntity, wantStatus: 422, wantType: "validation", wantMsg: "Unprocessable Entity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			body := decodeError(t, res)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantType, body.ErrorType)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	userId := uuid.New()
	app := newApp()
	app.Get("/me", NewJwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		id, err := UserIdFromCtx(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", id.String()))
	})

	valid := signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
	expired := signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)
	wrongSecret := signToken(t, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(time.Hour).Unix()}, "other")
	noExp := signToken(t, jwt.MapClaims{"user_id": userId.String()}, testSecret)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: 200},
		{name: "missing", header: "", want: 401},
		{name: "expired", header: "Bearer " + expired, want: 401},
		{name: "wrong secret", header: "Bearer " + wrongSecret, want: 401},
		{name: "no expiry", header: "Bearer " + noExp, want: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.StatusCode)

			if tt.want == 200 {
				var body BaseResponse[string]
				require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
				assert.Equal(t, userId.String(), body.Data)
			}
		})
	}
}

type sampleRequest struct {
	Title string `json:"title" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=5"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleRequest{Title: "x", Count: 2}))

	err := ValidateRequest(&sampleRequest{Count: 9})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "Title is required")
	assert.Contains(t, err.Error(), "Count must be at most 5")
}
