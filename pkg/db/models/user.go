package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/pkg/enums"
)

// User represents a staff account able to sign into the back office.
type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Role         enums.AccountRole `gorm:"column:role;type:text;not null"`
	Name         string            `gorm:"column:name;not null"`
	AvatarURL    *string           `gorm:"column:avatar_url"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
