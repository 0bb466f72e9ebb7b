package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grama-vaani/internal/service"
)

// UserHandler holds dependencies for the account endpoints.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	jwtServ  *service.JWTService
}

func NewUserHandler(logger *zap.Logger, userServ *service.UserService, jwtServ *service.JWTService) *UserHandler {
	return &UserHandler{logger: logger, userServ: userServ, jwtServ: jwtServ}
}

// Signup handles POST /signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var req struct {
		Email         string `json:"email" binding:"required,email"`
		Name          string `json:"name" binding:"required"`
		Phone         string `json:"phone" binding:"required"`
		Password      string `json:"password" binding:"required,min=8,max=72"`
		Location      string `json:"location"`
		PreferredCrop string `json:"preferred_crop"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Signup(c.Request.Context(), service.SignupInput{
		Email:         req.Email,
		Name:          req.Name,
		Phone:         req.Phone,
		Password:      req.Password,
		Location:      req.Location,
		PreferredCrop: req.PreferredCrop,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		}
		return
	}

	if err := h.setSessionCookie(c, user.Email); err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signup successful"})
}

// Login handles POST /login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		}
		return
	}

	if err := h.setSessionCookie(c, user.Email); err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout handles POST /logout.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// UpdateProfile handles PUT /profile/update.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		Name          *string `json:"name"`
		Phone         *string `json:"phone"`
		Location      *string `json:"location"`
		PreferredCrop *string `json:"preferred_crop"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fields, err := h.userServ.UpdateProfile(c.Request.Context(), user.Email, service.ProfileUpdateInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Location:      req.Location,
		PreferredCrop: req.PreferredCrop,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided for update"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("profile update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "updated_fields": fields})
}

func (h *UserHandler) setSessionCookie(c *gin.Context, email string) error {
	token, err := h.jwtServ.IssueToken(email)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(h.jwtServ.TTL().Seconds()), "/", "", false, true)
	return nil
}
