package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seller holds the commercial profile attached to a seller user account.
type Seller struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Email          string          `gorm:"column:email;not null"`
	Phone          string          `gorm:"column:phone;not null"`
	BankAccount    string          `gorm:"column:bank_account;not null"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2);not null"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	User           *User           `gorm:"foreignKey:UserID"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
