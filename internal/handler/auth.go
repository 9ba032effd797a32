package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/komi-attractions/internal/config"
	"github.com/iliyamo/komi-attractions/internal/middleware"
	"github.com/iliyamo/komi-attractions/internal/utils"
)

// AuthHandler issues moderator access tokens.  There is a single moderator
// account configured through the environment; no users table exists.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	Access tokenPart `json:"access"`
}

// Login checks the moderator credentials and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	if !h.Cfg.ModerationEnabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "moderation disabled"})
	}
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Cfg.ModeratorUser)) == 1
	// The hash is checked even for an unknown username so both cases take
	// the same time.
	passOK := utils.VerifyPassword(h.Cfg.ModeratorPassHash, req.Password)
	if !userOK || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, middleware.RoleModerator, h.Cfg.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
