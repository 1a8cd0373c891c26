package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/models"
	"github.com/kumarimahto/Smart-Tracer/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler implements the auth collaborator contract: register/login
// issue a bearer token, verify returns the identity behind one.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	DisplayName     string `json:"displayName" binding:"max=64"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var errs []string
	if !usernameRe.MatchString(req.Username) {
		errs = append(errs, "Username must be 3-20 letters, digits or underscores")
	}
	if !isStrongPassword(req.Password) {
		errs = append(errs, "Password must be 8-32 characters with upper, lower case letters and digits")
	}
	if req.Password != req.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	if len(errs) > 0 {
		util.FailFields(c, "Validation failed", errs)
		return
	}

	// case-insensitive uniqueness
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to check username", err)
		return
	}
	if count > 0 {
		util.Fail(c, http.StatusBadRequest, "Username already exists")
		return
	}

	const bcryptCost = 12
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	util.Created(c, "Registered successfully", gin.H{
		"token": token,
		"user":  userView(&user),
	})
}

// isStrongPassword requires 8-32 characters with upper, lower and digit.
func isStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Fail(c, http.StatusUnauthorized, "Invalid username or password")
		} else {
			util.FailErr(c, http.StatusInternalServerError, "Failed to look up user", err)
		}
		return
	}

	now := time.Now()

	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		util.Fail(c, http.StatusUnauthorized, "Account locked, try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		// five consecutive failures lock the account for ten minutes
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		_ = h.DB.Save(&user).Error
		util.Fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginIP = c.ClientIP()
	user.LastLoginAt = &now
	_ = h.DB.Save(&user).Error

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.FailErr(c, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	util.Success(c, gin.H{
		"token": token,
		"user":  userView(&user),
	})
}

// Verify returns the identity behind the presented bearer token. It sits
// behind AuthMiddleware, so reaching here means the token is valid.
func Verify(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	util.Success(c, gin.H{"user": userView(user)})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"username":    u.Username,
		"displayName": u.DisplayName,
		"createdAt":   u.CreatedAt,
	}
}
