package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/newsloop/news-api/internal/models"
)

const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// Authenticator issues and verifies HS256 session tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthenticator creates an Authenticator with the signing secret and
// token lifetime.
func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// GenerateToken signs a token for the user.
func (a *Authenticator) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(a.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (a *Authenticator) parseToken(tokenString string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, "", fmt.Errorf("missing subject: %w", err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed subject %q: %w", sub, err)
	}

	username, _ := claims["username"].(string)
	return userID, username, nil
}

// RequireAuth rejects requests without a valid Bearer token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, username, err := a.parseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, username)
		c.Next()
	}
}

// OptionalAuth attaches user identity when a valid token is present but lets
// anonymous requests through. Endpoints that personalize per user and still
// serve everyone (article lists, detail views) use this.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if userID, username, err := a.parseToken(tokenString); err == nil {
				c.Set(UserIDKey, userID)
				c.Set(UsernameKey, username)
			}
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID and whether one is set.
func GetUserID(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

// GetUsername returns the authenticated username, empty when anonymous.
func GetUsername(c *gin.Context) string {
	if v, exists := c.Get(UsernameKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
