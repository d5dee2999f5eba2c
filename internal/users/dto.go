package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
)

// UserDTO is the API-facing view of a login account.
type UserDTO struct {
	ID          uuid.UUID         `json:"id"`
	Username    string            `json:"username"`
	Role        enums.AccountRole `json:"role"`
	Name        string            `json:"name"`
	AvatarURL   *string           `json:"avatar_url,omitempty"`
	IsActive    bool              `json:"is_active"`
	LastLoginAt *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// FromModel converts a user record to its DTO.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
