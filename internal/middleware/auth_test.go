package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/internal/model"
	"courtbook/internal/utils"
)

const testSecret = "unit-test-secret"

func authedHandler(t *testing.T, wantID uint64, wantRole model.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := CallerID(c)
		require.True(t, ok)
		assert.Equal(t, wantID, id)
		role, ok := CallerRole(c)
		require.True(t, ok)
		assert.Equal(t, wantRole, role)
		return c.NoContent(http.StatusOK)
	}
}

func TestAuthMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret)(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not authenticated")
}

func TestAuthInvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret)(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthBearerToken(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 7, model.RolePlayer, 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret)(authedHandler(t, 7, model.RolePlayer))
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthCookieToken(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 3, model.RoleOwner, 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret)(authedHandler(t, 3, model.RoleOwner))
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewSessionToken("some-other-secret", 3, model.RoleOwner, 60)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret)(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 9, model.RolePlayer, 60)
	require.NoError(t, err)

	run := func(required model.Role) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := Auth(testSecret)(RequireRole(required)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}))
		require.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(model.RolePlayer).Code)
	assert.Equal(t, http.StatusForbidden, run(model.RoleOwner).Code)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireRole(model.RoleOwner)(func(c echo.Context) error {
		t.Fatal("handler should not be reached")
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
