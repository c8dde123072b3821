package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleCandidate Role = "candidate"
	RolePending   Role = "pending"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCandidate, RolePending:
		return true
	default:
		return false
	}
}

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=80"`
	Photo string `json:"photo" binding:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=admin staff candidate pending"`
}
