package identity

import (
	"context"
	"net/mail"

	"github.com/isms/backend/internal/domain/shared"
)

// User is a staff account
type User struct {
	shared.BaseEntity
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null;default:'CASHIER'"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// NewUser creates a staff account. passwordHash must already be hashed;
// the domain never sees plaintext passwords.
func NewUser(email, name, passwordHash string, role Role) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// ChangeRole assigns a new role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	u.Role = role
	u.Touch()
	return nil
}

// Rename updates the display name
func (u *User) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	u.Name = name
	u.Touch()
	return nil
}

// SetPasswordHash replaces the stored hash
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// Deactivate disables the account without deleting it
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// Activate re-enables the account
func (u *User) Activate() {
	u.IsActive = true
	u.Touch()
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	shared.Repository[User]
	FindByEmail(ctx context.Context, email string) (*User, error)
}
