package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/citycable/cable_collect_app/internal/apperrors"
	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/dto"
	"github.com/citycable/cable_collect_app/internal/middleware"
	"github.com/citycable/cable_collect_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// GoogleAuthHandler handles Google sign-in requests. The mobile app obtains
// the ID token from the Google SDK and posts it here.
type GoogleAuthHandler struct {
	googleAuthService portssvc.GoogleAuthSvcFacade
	userService       portssvc.UserSvcFacade
	authHandler       *AuthHandler
}

// NewGoogleAuthHandler creates a new instance of GoogleAuthHandler.
func NewGoogleAuthHandler(gs portssvc.GoogleAuthSvcFacade, us portssvc.UserSvcFacade, ah *AuthHandler) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		googleAuthService: gs,
		userService:       us,
		authHandler:       ah,
	}
}

// registerGoogleAuthRoutes registers the Google sign-in route.
func registerGoogleAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleAuthHandler(services.GoogleAuth, services.User, NewAuthHandler(services.User, services.Token))
	rg.POST("/api/v1/auth/google", h.GoogleSignIn)
}

// GoogleSignIn godoc
// @Summary Sign in with Google
// @Description Validates a Google ID token and returns an access/refresh token pair, creating the subscriber account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *GoogleAuthHandler) GoogleSignIn(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.googleAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		logger.Error("Email claim missing from Google ID token")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Email missing from Google token"})
		return
	}
	if name == "" {
		name = email
	}

	// The verified email doubles as the username.
	user, err := h.userService.GetUserByUsername(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to look up Google user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
			return
		}

		// First sign-in: provision a subscriber with an unguessable local
		// password. Password login stays possible only after a reset.
		randomPassword, err := utils.GenerateSecureRandomString(24)
		if err != nil {
			logger.Error("Failed to generate placeholder password", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
			return
		}
		user, err = h.userService.CreateUser(ctx, dto.CreateUserRequest{
			Name:     name,
			Username: email,
			Password: randomPassword,
		})
		if err != nil {
			logger.Error("Failed to provision Google user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
			return
		}
		logger.Info("Provisioned new subscriber via Google sign-in", slog.String("user_id", user.UserID))
	}

	resp, err := h.authHandler.buildAuthResponse(c, user)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, resp)
}
