package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/middleware"
	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// AuthHandler handles account registration, login and trader validation.
type AuthHandler struct {
	authService *service.AuthService
	throttle    *middleware.LoginThrottle
	uploadDir   string
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, throttle *middleware.LoginThrottle, uploadDir string) *AuthHandler {
	return &AuthHandler{authService: authService, throttle: throttle, uploadDir: uploadDir}
}

// Register creates an admin account. Accepts multipart form data with an
// optional "img" profile picture.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
		Email    string `form:"email" binding:"required,email"`
	}

	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Username, password and email are required")
		return
	}

	imgPath := ""
	if fh, err := c.FormFile("img"); err == nil {
		saved, err := utils.SaveImage(h.uploadDir, fh)
		if err != nil {
			utils.Error(c, 500, "UPLOAD_FAILED", "Failed to save profile image")
			return
		}
		imgPath = saved
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Email, imgPath)
	if err != nil {
		if errors.Is(err, utils.ErrUserExists) {
			utils.Error(c, 409, "USER_EXISTS", "Username or email is already registered")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register user")
		return
	}

	utils.Success(c, 201, "User registered successfully", gin.H{
		"user": user,
	})
}

// Login verifies credentials and returns a signed token. Failed attempts are
// throttled per IP.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Username and password are required")
		return
	}

	ip := c.ClientIP()
	if h.throttle.Blocked(c.Request.Context(), ip) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			h.throttle.RecordFailure(c.Request.Context(), ip)
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	h.throttle.Reset(c.Request.Context(), ip)
	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// ValidateTrader confirms the trader exists and issues a trader-scoped token
// for redemption links.
func (h *AuthHandler) ValidateTrader(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid trader ID")
		return
	}

	token, trader, err := h.authService.TraderToken(id)
	if err != nil {
		if errors.Is(err, utils.ErrTraderNotFound) {
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to validate trader")
		return
	}

	utils.Success(c, 200, "Trader validated successfully", gin.H{
		"token":  token,
		"trader": trader,
	})
}
