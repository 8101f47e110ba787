package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/immunitrack/vaccine-tracker-api/internal/config"
	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

const TokenDuration = 24 * time.Hour

type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthUser is the register/login payload: the user's public fields plus a
// fresh bearer token. The password hash never leaves the server.
type AuthUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type TokenOutput struct {
	Body struct {
		Success bool     `json:"success"`
		Data    AuthUser `json:"data"`
	}
}

type RegisterInput struct {
	Body struct {
		Username string `json:"username" maxLength:"50" doc:"Unique login name"`
		Email    string `json:"email" format:"email"`
		Password string `json:"password" minLength:"6" doc:"Minimum 6 characters"`
	}
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterInput) (*TokenOutput, error) {
	var existing int64
	err := h.db.Model(&models.User{}).
		Where("email = ? OR username = ?", input.Body.Email, input.Body.Username).
		Count(&existing).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error during registration")
	}
	if existing > 0 {
		return nil, huma.Error400BadRequest("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error during registration")
	}

	user := models.User{
		Username:     input.Body.Username,
		Email:        input.Body.Email,
		PasswordHash: string(hash),
		Role:         "staff",
	}
	if err := h.db.Create(&user).Error; err != nil {
		// Races with a concurrent register land here instead of the
		// pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("User already exists")
		}
		return nil, huma.Error500InternalServerError("Server error during registration")
	}

	return h.tokenResponse(user)
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" format:"email"`
		Password string `json:"password"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password so the response does not
			// reveal whether the email is registered.
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		return nil, huma.Error500InternalServerError("Server error during login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	return h.tokenResponse(user)
}

func (h *AuthHandler) tokenResponse(user models.User) (*TokenOutput, error) {
	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &TokenOutput{}
	res.Body.Success = true
	res.Body.Data = AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    token,
	}
	return res, nil
}

type MeOutput struct {
	Body struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeOutput, error) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	res := &MeOutput{}
	res.Body.Success = true
	res.Body.Data = user
	return res, nil
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken verifies a bearer token and returns the user id it carries.
func (h *AuthHandler) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	return uint(userIDFloat), nil
}
