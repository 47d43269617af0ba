// Package auth implements credential verification and token-based
// sessions.
//
// Destructive cheque operations used to be gated by a shared plaintext
// password in the frontend. Here they are gated by per-user credentials:
// passwords are stored as bcrypt hashes and sessions are HS256 JWTs
// carrying the username and role.
package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cheqify/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 24 * time.Hour

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

const (
	// ContextUsername is the gin context key for the authenticated username.
	ContextUsername = "username"
	// ContextRole is the gin context key for the authenticated user's role.
	ContextRole = "role"
)

var (
	ErrCredentialsInvalid = errors.New("the username or password is incorrect")
	ErrPasswordTooShort   = errors.New("the password must be at least 6 characters long")
	ErrTokenMissing       = errors.New("a bearer token is required for this endpoint")
	ErrTokenInvalid       = errors.New("the bearer token is invalid or expired")
	ErrAdminRequired      = errors.New("this action requires an admin user")
)

// secret returns the HMAC key used to sign tokens.
func secret() []byte {
	s, ok := os.LookupEnv("JWT_SECRET")
	if !ok {
		// Development fallback. Set JWT_SECRET for anything real.
		log.Warn().Msg("JWT_SECRET is not set, using an insecure development secret")
		s = "cheqify-insecure-dev-secret"
	}

	return []byte(s)
}

// HashPassword hashes a password for storage, enforcing the password
// policy.
func HashPassword(password string) ([]byte, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// VerifyPassword compares a password with the stored hash for the user.
func VerifyPassword(user models.User, password string) error {
	err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password))
	if err != nil {
		return ErrCredentialsInvalid
	}

	return nil
}

// IssueToken creates a signed token for the user.
func IssueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(TokenLifetime).Unix(),
	})

	return token.SignedString(secret())
}

// parseToken verifies a token string and returns the username and role
// claims.
func parseToken(tokenString string) (username, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrTokenInvalid
	}

	username, _ = claims["username"].(string)
	role, _ = claims["role"].(string)
	if username == "" {
		return "", "", ErrTokenInvalid
	}

	return username, role, nil
}

// Middleware requires a valid bearer token and stores the username and
// role in the gin context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrTokenMissing.Error()})
			return
		}

		username, role, err := parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextUsername, username)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin requires the authenticated user to have the admin role.
// It must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ErrAdminRequired.Error()})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user record for the authenticated request.
func CurrentUser(c *gin.Context) (models.User, error) {
	var user models.User
	err := models.DB.Where(&models.User{Username: c.GetString(ContextUsername)}).First(&user).Error
	return user, err
}
