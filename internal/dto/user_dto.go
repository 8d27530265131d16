package dto

import (
	"time"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// UserListRequest defines filters for listing users.
type UserListRequest struct {
	Search string
	Page   PageRequest
}

// UserCreateRequest is the signup payload.
type UserCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=64"`
	Image string `json:"image" validate:"omitempty,url"`
}

// UserRoleUpdateRequest is the admin payload for changing a role directly.
type UserRoleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=Student Teacher Admin"`
}

// UserResponse serializes a user.
type UserResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Image     string      `json:"image"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// UserListResponse wraps a page of users.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Image:     user.Image,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
