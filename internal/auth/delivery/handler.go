package delivery

import (
	"errors"
	"net/http"
	"time"

	authdomain "settlease-backend/internal/auth/domain"
	authdto "settlease-backend/internal/auth/dto"
	"settlease-backend/internal/auth/usecase"
	"settlease-backend/pkg/birthday"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// FirebaseSignIn exchanges a Firebase ID token for API tokens
// POST /api/auth/firebase
func (h *AuthHandler) FirebaseSignIn(c *gin.Context) {
	var req authdto.FirebaseSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.FirebaseSignIn(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshToken POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRefreshToken),
			errors.Is(err, usecase.ErrRefreshTokenExpired),
			errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.LogoutRequest
	// The body is optional; an absent refresh token still clears the stored access token
	_ = c.ShouldBindJSON(&req)

	if err := h.authUsecase.Logout(c.GetString(ContextUserID), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user, time.Now()))
}

// Session GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.authUsecase.SessionState(c.GetString(ContextUserID)))
}

// UpdateProfile PUT /api/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.GetString(ContextUserID), &req)
	if err != nil {
		switch {
		case errors.Is(err, birthday.ErrInvalidBirthday):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, profileResponse(user, time.Now()))
}

func profileResponse(user *authdomain.User, today time.Time) authdto.ProfileResponse {
	text := birthday.NoBirthdayText
	if user.Birthday != nil {
		text = birthday.FormatDate(*user.Birthday, today)
	}
	return authdto.ProfileResponse{User: user, BirthdayText: text}
}
