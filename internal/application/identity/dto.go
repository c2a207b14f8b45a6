package identity

import (
	"time"

	"github.com/isms/backend/internal/domain/identity"
)

// LoginRequest carries the credentials for a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the payload returned after a successful login
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest is the request to create a staff account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest is the request to update a staff account
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// UserResponse is the API representation of a staff account
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PermissionCell is one role/module cell of the matrix
type PermissionCell struct {
	Module    string `json:"module" binding:"required"`
	CanRead   bool   `json:"canRead"`
	CanWrite  bool   `json:"canWrite"`
	CanDelete bool   `json:"canDelete"`
}

// UpdatePermissionsRequest replaces every cell for one role
type UpdatePermissionsRequest struct {
	Permissions []PermissionCell `json:"permissions" binding:"required,dive"`
}

// RolePermissionsResponse groups the matrix cells of one role
type RolePermissionsResponse struct {
	Role        string           `json:"role"`
	Permissions []PermissionCell `json:"permissions"`
}

// ToUserResponse converts a user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.String(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToPermissionCell converts a matrix row to its API representation
func ToPermissionCell(p *identity.RolePermission) PermissionCell {
	return PermissionCell{
		Module:    string(p.Module),
		CanRead:   p.CanRead,
		CanWrite:  p.CanWrite,
		CanDelete: p.CanDelete,
	}
}
