package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "courtbook/internal/model"
    "courtbook/internal/utils"
)

// TokenCookieName is the http-only cookie the login endpoint sets and
// this middleware reads.
const TokenCookieName = "token"

// Context keys under which the verified identity is stored.  Handlers
// must go through CallerID/CallerRole instead of reading these raw.
const (
    ctxUserID = "user_id"
    ctxRole   = "role"
)

// Auth returns an Echo middleware that verifies a session token and
// injects the caller's typed identity into the request context.  The
// token is taken from the http-only cookie first, then from a Bearer
// Authorization header for non-cookie clients.  Requests without any
// token answer 401 "not authenticated"; requests with a token that
// fails signature or expiry checks answer 401 "invalid token".
func Auth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := ""
            if ck, err := c.Cookie(TokenCookieName); err == nil && ck.Value != "" {
                raw = ck.Value
            } else if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
                raw = strings.TrimPrefix(auth, "Bearer ")
            }
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
            }

            claims, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the verified identity with concrete types.  Only this
            // middleware ever writes these keys, so downstream assertions
            // cannot fail on well-formed requests.
            c.Set(ctxUserID, claims.UserID)
            c.Set(ctxRole, claims.Role)
            return next(c)
        }
    }
}

// CallerID returns the authenticated user's ID from the context.  The
// boolean is false when the request never passed the Auth middleware.
func CallerID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ctxUserID).(uint64)
    return id, ok
}

// CallerRole returns the authenticated user's role from the context.
func CallerRole(c echo.Context) (model.Role, bool) {
    role, ok := c.Get(ctxRole).(model.Role)
    return role, ok
}
