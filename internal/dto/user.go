package dto

import (
	"time"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest registers a subscriber, collector, or admin.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=USER COLLECTOR ADMIN"`
}

// UpdateUserRequest changes a user's profile details. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Phone *string `json:"phone"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Username      string          `json:"username"`
	Phone         string          `json:"phone"`
	Role          string          `json:"role"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Username:      u.Username,
		Phone:         u.Phone,
		Role:          string(u.Role),
		WalletBalance: u.WalletBalance,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain Users to response DTOs.
func ToUserResponses(us []domain.User) []UserResponse {
	responses := make([]UserResponse, len(us))
	for i := range us {
		responses[i] = ToUserResponse(&us[i])
	}
	return responses
}
