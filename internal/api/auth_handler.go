package api

import (
	"net/http"

	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/models"
	"github.com/campus-housing-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and session endpoints
type AuthHandler struct {
	auth service.AuthService
	cfg  *config.AuthConfig
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: services.Auth,
		cfg:  &cfg.Auth,
		log:  log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newAPIError(http.StatusBadRequest, "invalid request body"))
		return
	}

	profile, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "User registered successfully!", profile)
}

// Login handles POST /api/v1/auth/login.
// The token is returned in the body and set as an httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newAPIError(http.StatusBadRequest, "invalid request body"))
		return
	}

	session, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	// Cookie lifetime is independent of the token's; the token expiry is checked on every request
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, session.Token, int(h.cfg.CookieMaxAge.Seconds()), "/", "", h.cfg.CookieSecure, true)

	respondOK(c, "User logged in successfully!", session)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.Error(service.ErrUnauthenticated)
		return
	}
	respondOK(c, "Authenticated", identity)
}
