package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edgarsv/passvault/internal/config"
	"github.com/edgarsv/passvault/internal/model"
	"github.com/edgarsv/passvault/internal/repository"
	"github.com/edgarsv/passvault/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// AuthHandler bundles dependencies for the signup and login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// msgInvalidCredentials is shared by "no such user" and "wrong password" so
// responses cannot be used to enumerate usernames.
const msgInvalidCredentials = "invalid credentials"

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResp struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// Signup handles POST /api/auth/signup: create the user and return a token
// immediately.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password are required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "username already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	token, err := utils.NewToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, authResp{User: u.Username, Token: token})
}

// Login handles POST /api/auth/login: verify credentials and return a fresh
// token. Unknown username and wrong password get byte-identical responses.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidCredentials})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidCredentials})
	}

	token, err := utils.NewToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, authResp{User: u.Username, Token: token})
}
