package v1

import (
	"github.com/cheqify/backend/internal/models"
)

// Credentials is the request body for registration and login.
type Credentials struct {
	Username string `json:"username" binding:"required" example:"maria"`
	Password string `json:"password" binding:"required" example:"hunter22"` // Never stored in plain text
}

// User is the API representation of a user account.
type User struct {
	models.DefaultModel
	Username string          `json:"username" example:"maria"`
	Role     models.UserRole `json:"role" example:"employee"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Username:     model.Username,
		Role:         model.Role,
	}
}

// UserResponse is the response object for a single user
type UserResponse struct {
	Data  *User   `json:"data"`
	Error *string `json:"error" example:"A human readable error message"`
}

// SessionResponse is the response object for a successful login
type SessionResponse struct {
	Data  *Session `json:"data"`
	Error *string  `json:"error" example:"A human readable error message"`
}

// Session carries the session token and the user it was issued for.
type Session struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."` // Bearer token for the Authorization header
	User  User   `json:"user"`
}
