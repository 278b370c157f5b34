package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/internal/config"
	"courtbook/internal/middleware"
)

func jsonCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterRejectsBadInput(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil) // repo never reached

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing role",
			body: `{"email":"a@b.com","password":"longenough","fullname":"A B"}`,
			want: "Role",
		},
		{
			name: "unknown role",
			body: `{"email":"a@b.com","password":"longenough","fullname":"A B","role":"admin"}`,
			want: "Role: must be one of",
		},
		{
			name: "short password",
			body: `{"email":"a@b.com","password":"short","fullname":"A B","role":"player"}`,
			want: "Password",
		},
		{
			name: "bad email",
			body: `{"email":"nope","password":"longenough","fullname":"A B","role":"player"}`,
			want: "Email",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonCtx(t, http.MethodPost, "/api/auth/register", tc.body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil)
	c, rec := jsonCtx(t, http.MethodPost, "/api/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	res := rec.Result()
	var found *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == middleware.TokenCookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "expected session cookie to be set")
	assert.Empty(t, found.Value)
	assert.Negative(t, found.MaxAge)
	assert.True(t, found.HttpOnly)
}

func TestBookRejectsInvertedWindow(t *testing.T) {
	h := NewPlayerReservationHandler(nil) // repo never reached

	now := time.Now().UTC().Truncate(time.Second)
	body := `{"court_id":1,"start_time":"` + now.Format(time.RFC3339) +
		`","end_time":"` + now.Add(-time.Hour).Format(time.RFC3339) + `"}`

	c, rec := jsonCtx(t, http.MethodPost, "/api/reservations", body)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EndTime")
}

func TestPathID(t *testing.T) {
	c, _ := jsonCtx(t, http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	assert.Equal(t, uint64(42), pathID(c, "id"))

	c.SetParamValues("abc")
	assert.Zero(t, pathID(c, "id"))

	c.SetParamValues("-1")
	assert.Zero(t, pathID(c, "id"))
}

func TestQueryHelpers(t *testing.T) {
	c, _ := jsonCtx(t, http.MethodGet, "/api/owner/reports/history?limit=25&start_date=2026-01-15&end_date=bogus", "")

	assert.Equal(t, 25, queryInt(c, "limit", 100))
	assert.Equal(t, 100, queryInt(c, "missing", 100))

	start, err := queryDate(c, "start_date")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.January, start.Month())

	_, err = queryDate(c, "end_date")
	assert.Error(t, err)

	none, err := queryDate(c, "missing")
	require.NoError(t, err)
	assert.Nil(t, none)
}
