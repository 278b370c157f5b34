package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"courtbook/internal/config"
	"courtbook/internal/middleware"
	"courtbook/internal/model"
	"courtbook/internal/repository"
	"courtbook/internal/utils"
	"courtbook/internal/validation"
)

// AuthHandler bundles dependencies for auth and account endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullname" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=owner player"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Role     string `json:"role"`
}
type authResp struct {
	User  userPart `json:"user"`
	Token string   `json:"token"`
}

// Register creates an account and returns its public profile. The
// session starts at login, not here.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validation.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FullName, model.Role(req.Role), h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return conflict(c, "email already registered")
		}
		return serverError(c, "create user failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": userPart{ID: uid, Email: req.Email, FullName: req.FullName, Role: req.Role},
	})
}

// Login verifies credentials, sets the session cookie, and also returns
// the token in the body for clients that prefer a Bearer header.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return serverError(c, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLMin)
	if err != nil {
		return serverError(c, "issue token failed")
	}

	h.setSessionCookie(c, tok.Token, h.Cfg.TokenTTLMin*60)

	return c.JSON(http.StatusOK, authResp{
		User:  userPart{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: string(u.Role)},
		Token: tok.Token,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; sessions are stateless on the server side.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.setSessionCookie(c, "", -1)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "user not found")
		}
		return serverError(c, "query failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": userPart{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: string(u.Role)},
	})
}

// DeleteAccount removes the caller's account and everything hanging off
// it (courts, reservations, notifications). Archived history rows stay:
// they have no foreign keys and survive the cascade. The session cookie
// is cleared on success.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	uid, ok := middleware.CallerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	email, err := h.Users.DeleteCascade(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "user not found")
		}
		return serverError(c, "delete account failed")
	}

	h.setSessionCookie(c, "", -1)
	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted", "email": email})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	})
}
