package unit

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	appmw "app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "unit-test-secret"

// mainのissuerと同じclaims形でtokenを作る
func signToken(t *testing.T, userID int64, role model.Role, tv int, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"tv":   tv,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

// mwを通してhandlerまで到達したかと、レスポンスコードを返す
func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, authz string) (reached bool, rec *httptest.ResponseRecorder, c echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	assert.NoError(t, err)
	return reached, rec, c
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	mw := appmw.AuthJWT(config.Config{JWTSecret: testSecret})
	reached, rec, _ := runMiddleware(t, mw, "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	mw := appmw.AuthJWT(config.Config{JWTSecret: testSecret})
	reached, rec, _ := runMiddleware(t, mw, "Token abc123")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, 1, model.RoleAdmin, 0, time.Hour)
	mw := appmw.AuthJWT(config.Config{JWTSecret: "different-secret"})
	reached, rec, _ := runMiddleware(t, mw, "Bearer "+token)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signToken(t, 1, model.RoleAdmin, 0, -time.Minute)
	mw := appmw.AuthJWT(config.Config{JWTSecret: testSecret})
	reached, rec, _ := runMiddleware(t, mw, "Bearer "+token)

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken_SetsContext(t *testing.T) {
	token := signToken(t, 7, model.RoleStaff, 3, time.Hour)
	mw := appmw.AuthJWT(config.Config{JWTSecret: testSecret})
	reached, rec, c := runMiddleware(t, mw, "Bearer "+token)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(appmw.CtxUserIDKey))
	assert.Equal(t, "staff", c.Get(appmw.CtxUserRoleKey))
	assert.Equal(t, 3, c.Get(appmw.CtxTokenVersionKey))
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	cases := []struct {
		role     string
		wantCode int
	}{
		{"admin", http.StatusOK},
		{"staff", http.StatusForbidden},
		{"user", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(appmw.CtxUserIDKey, int64(1))
		c.Set(appmw.CtxUserRoleKey, tc.role)

		h := appmw.AdminRoleGuard()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, h(c))
		assert.Equal(t, tc.wantCode, rec.Code, "role=%s", tc.role)
	}
}

func TestTokenVersionGuard_StaleVersion(t *testing.T) {
	users := new(UserRepoFullMock)
	users.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, IsActive: true, TokenVersion: 4}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(appmw.CtxUserIDKey, int64(7))
	c.Set(appmw.CtxTokenVersionKey, 3) //DBは4

	h := appmw.TokenVersionGuard(users)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_InactiveUser(t *testing.T) {
	users := new(UserRepoFullMock)
	users.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, IsActive: false, TokenVersion: 3}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(appmw.CtxUserIDKey, int64(7))
	c.Set(appmw.CtxTokenVersionKey, 3)

	h := appmw.TokenVersionGuard(users)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTokenVersionGuard_MatchPasses(t *testing.T) {
	users := new(UserRepoFullMock)
	users.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, IsActive: true, TokenVersion: 3}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(appmw.CtxUserIDKey, int64(7))
	c.Set(appmw.CtxTokenVersionKey, 3)

	h := appmw.TokenVersionGuard(users)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
