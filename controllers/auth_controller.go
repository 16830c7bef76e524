package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/middleware"
	"github.com/mbelova/canvashare/models"
	"github.com/mbelova/canvashare/utils"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = 24 * time.Hour

// AuthController handles signup, login and session endpoints.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Signup registers a new profile and returns a bearer token.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42201, "invalid signup payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, err.Error())
		return
	}

	user := models.User{
		FullName:     utils.SanitizePlain(strings.TrimSpace(req.FullName)),
		Email:        email,
		PasswordHash: hash,
	}
	// Duplicate emails and any other storage failure surface uniformly as a
	// bad request, the same way the upstream provider rejection would.
	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, err.Error())
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, tokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "sign up failed")
		return
	}

	utils.Success(ctx, gin.H{"access_token": token, "token_type": "bearer"})
}

// Login verifies credentials and returns a bearer token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42202, "invalid login payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "login failed")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusBadRequest, 40004, "login failed")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, tokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40005, "login failed")
		return
	}

	utils.Success(ctx, gin.H{"access_token": token, "token_type": "bearer"})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "missing bearer token")
		return
	}
	tokenString := strings.TrimSpace(parts[1])

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid token")
		return
	}

	expires := time.Now().Add(tokenTTL)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(tokenString, expires)

	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "profile not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40006, err.Error())
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}
