package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newWhoAmIApp(optional bool) *fiber.App {
	app := fiber.New()
	app.Use(NewJwtMiddleware(testSecret, optional))
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		actor := ActorFromCtx(ctx)
		return ctx.JSON(fiber.Map{"user_id": actor.UserId, "groups": actor.Groups, "guest": actor.IsGuest()})
	})
	return app
}

func whoAmI(t *testing.T, app *fiber.App, token string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestJwtMiddlewareValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "alice",
		"groups":  []string{"devs", "ops"},
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	status, body := whoAmI(t, newWhoAmIApp(false), token)
	assert.Equal(t, 200, status)
	assert.Equal(t, "alice", body["user_id"])
	assert.Equal(t, []interface{}{"devs", "ops"}, body["groups"])
}

func TestJwtMiddlewareSubjectFallback(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "bob"})

	status, body := whoAmI(t, newWhoAmIApp(false), token)
	assert.Equal(t, 200, status)
	assert.Equal(t, "bob", body["user_id"])
}

func TestJwtMiddlewareRequired(t *testing.T) {
	app := newWhoAmIApp(false)

	status, _ := whoAmI(t, app, "")
	assert.Equal(t, 401, status)

	status, _ = whoAmI(t, app, "garbage")
	assert.Equal(t, 401, status)

	expired := signToken(t, jwt.MapClaims{"user_id": "alice", "exp": time.Now().Add(-time.Hour).Unix()})
	status, _ = whoAmI(t, app, expired)
	assert.Equal(t, 401, status)
}

func TestJwtMiddlewareOptional(t *testing.T) {
	app := newWhoAmIApp(true)

	status, body := whoAmI(t, app, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["guest"])

	status, _ = whoAmI(t, app, "garbage")
	assert.Equal(t, 401, status, "a bad token is never downgraded to a guest")
}

func TestErrorHandlerMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		token  bool
		status int
		kind   string
	}{
		{"not found", apperror.NotFound("note", "x"), false, 404, "NOT_FOUND"},
		{"conflict", apperror.AliasConflict("x"), false, 409, "ALIAS_CONFLICT"},
		{"validation", apperror.Validation("alias", "bad"), false, 400, "VALIDATION_ERROR"},
		{"denied guest", apperror.Denied("read", "x"), false, 401, "AUTHORIZATION_DENIED"},
		{"denied user", apperror.Denied("read", "x"), true, 403, "AUTHORIZATION_DENIED"},
		{"fiber", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), false, 405, "HTTP_ERROR"},
		{"unknown", errors.New("db exploded"), false, 500, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
			app.Use(NewJwtMiddleware(testSecret, true))
			app.Get("/", func(ctx *fiber.Ctx) error { return tc.err })

			req := httptest.NewRequest("GET", "/", nil)
			if tc.token {
				req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": "alice"}))
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body Response[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.status, body.Code)
			assert.Equal(t, tc.kind, body.Error)
			assert.False(t, body.Success)
			assert.NotContains(t, body.Message, "db exploded")
		})
	}
}

type sampleRequest struct {
	Name  string   `json:"name" validate:"required,max=5"`
	Items []string `json:"items" validate:"dive,required"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "ok"}))

	err := ValidateRequest(sampleRequest{})
	require.Error(t, err)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "name", appErr.Resource)

	err = ValidateRequest(sampleRequest{Name: "toolongname"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	err = ValidateRequest(sampleRequest{Name: "ok", Items: []string{""}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
