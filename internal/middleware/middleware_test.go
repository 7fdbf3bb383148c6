package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce/internal/domain/model"
	"ecommerce/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "mw_secret"

type okResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func makeJWT(t *testing.T, key string, sub interface{}, role string, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  exp.Unix(),
	})
	s, err := tok.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

// AuthJWT(+guard)の後ろでcontextの値を返すだけ
func newEcho(mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, okResponse{
			UserID: c.Get(middleware.CtxUserIDKey).(int64),
			Role:   c.Get(middleware.CtxUserRoleKey).(string),
		})
	}, mws...)
	return e
}

func doGet(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_Valid(t *testing.T) {
	e := newEcho(middleware.AuthJWT(secret))
	tok := makeJWT(t, secret, "42", "CUSTOMER", jwt.SigningMethodHS256, time.Now().Add(time.Minute))

	rec := doGet(e, tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var body okResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "CUSTOMER", body.Role)
}

func TestAuthJWT_Rejects(t *testing.T) {
	e := newEcho(middleware.AuthJWT(secret))
	future := time.Now().Add(time.Minute)

	cases := map[string]string{
		"missing":      "",
		"wrong secret": makeJWT(t, "other", "42", "CUSTOMER", jwt.SigningMethodHS256, future),
		"wrong alg":    makeJWT(t, secret, "42", "CUSTOMER", jwt.SigningMethodHS384, future),
		"expired":      makeJWT(t, secret, "42", "CUSTOMER", jwt.SigningMethodHS256, time.Now().Add(-time.Minute)),
		"no role":      makeJWT(t, secret, "42", "", jwt.SigningMethodHS256, future),
		"bad sub":      makeJWT(t, secret, "abc", "CUSTOMER", jwt.SigningMethodHS256, future),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doGet(e, tok)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestAdminRoleGuard(t *testing.T) {
	e := newEcho(middleware.AuthJWT(secret), middleware.AdminRoleGuard())
	future := time.Now().Add(time.Minute)

	rec := doGet(e, makeJWT(t, secret, float64(1), "CUSTOMER", jwt.SigningMethodHS256, future))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doGet(e, makeJWT(t, secret, float64(1), "ADMIN", jwt.SigningMethodHS256, future))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_AllowsListedRoles(t *testing.T) {
	e := newEcho(middleware.AuthJWT(secret), middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	future := time.Now().Add(time.Minute)

	for _, role := range []string{"CUSTOMER", "ADMIN"} {
		rec := doGet(e, makeJWT(t, secret, "5", role, jwt.SigningMethodHS256, future))
		assert.Equal(t, http.StatusOK, rec.Code, role)
	}

	rec := doGet(e, makeJWT(t, secret, "5", "GUEST", jwt.SigningMethodHS256, future))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"forbidden: requires CUSTOMER|ADMIN"}`, rec.Body.String())
}
