package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// UserRole determines which actions a user may perform.
//
// Destructive cheque operations (edit, delete, restore, permanent
// delete) are reserved for admins.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// Valid reports whether the role is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}

	return false
}

// User is an account that can log in to the backend.
type User struct {
	DefaultModel
	Username       string   `gorm:"uniqueIndex"`
	HashedPassword []byte   `json:"-"` // bcrypt hash, never serialized
	Role           UserRole `gorm:"default:employee"`
}

// BeforeSave validates the user and trims whitespace from the username.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return ErrUsernameMissing
	}

	if u.Role == "" {
		u.Role = RoleEmployee
	}

	if !u.Role.Valid() {
		return ErrUserRoleInvalid
	}

	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	return u.DefaultModel.BeforeCreate(tx)
}

// UserCount returns the number of registered users.
func UserCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&User{}).Count(&count).Error
	return count, err
}

// Export returns all users on this instance. Password hashes are
// excluded by the JSON serialization.
func (User) Export() (json.RawMessage, error) {
	var users []User
	err := DB.Unscoped().Where(&User{}).Find(&users).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&users)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
