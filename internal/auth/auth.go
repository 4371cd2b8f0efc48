// Package auth verifies desk staff. Staff tokens are issued by an external
// login page and arrive as an auth_token cookie; services use an X-API-KEY
// header instead.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/gdg-garage/travel-enquiry-api/internal/config"
	"github.com/gdg-garage/travel-enquiry-api/internal/models"
)

const (
	CookieName   = "auth_token"
	APIKeyHeader = "X-API-KEY"

	TokenDuration = 24 * time.Hour

	ViaToken  = "token"
	ViaAPIKey = "api-key"
	ViaOpen   = "open"
)

var (
	ErrNoCredentials = errors.New("no token found")
	ErrInvalidToken  = errors.New("invalid token")
	ErrAPIKeyExpired = errors.New("API key expired")
)

// Staff is the verified identity behind a desk request.
type Staff struct {
	Name string `json:"name" doc:"Staff member or API key name"`
	Via  string `json:"via" enum:"token,api-key,open" doc:"How the caller was authenticated"`
}

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Enabled reports whether staff routes require credentials.
func (h *AuthHandler) Enabled() bool {
	return h.cfg.JWTSecret != ""
}

func (h *AuthHandler) GenerateToken(staff string) (string, error) {
	claims := jwt.MapClaims{
		"name": staff,
		"exp":  time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken verifies a staff token and returns its name claim and
// remaining lifetime.
func (h *AuthHandler) ParseToken(tokenString string) (string, time.Duration, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, ErrInvalidToken
	}
	name, ok := claims["name"].(string)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: missing name claim", ErrInvalidToken)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", 0, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	return name, time.Until(exp.Time), nil
}

// lookupAPIKey resolves an X-API-KEY value and records its use.
func (h *AuthHandler) lookupAPIKey(ctx context.Context, key string) (Staff, error) {
	if h.db == nil {
		return Staff{}, ErrInvalidToken
	}
	var keyModel models.APIKey
	if err := h.db.WithContext(ctx).Where("key = ?", key).First(&keyModel).Error; err != nil {
		return Staff{}, ErrInvalidToken
	}
	if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
		return Staff{}, ErrAPIKeyExpired
	}
	h.db.WithContext(ctx).Model(&keyModel).Update("last_used_at", time.Now())
	return Staff{Name: keyModel.Name, Via: ViaAPIKey}, nil
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}
