package sellers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manuslibros/libros-backend/pkg/db/models"
)

// SellerDTO is the API-facing view of a seller profile.
type SellerDTO struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Username       string          `json:"username,omitempty"`
	Name           string          `json:"name,omitempty"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	BankAccount    string          `json:"bank_account"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreatedSellerDTO is returned once on creation. TempPassword is only set when
// the account was provisioned with a generated credential.
type CreatedSellerDTO struct {
	SellerDTO
	TempPassword string `json:"temp_password,omitempty"`
}

func toSellerDTO(seller models.Seller) SellerDTO {
	dto := SellerDTO{
		ID:             seller.ID,
		UserID:         seller.UserID,
		Email:          seller.Email,
		Phone:          seller.Phone,
		BankAccount:    seller.BankAccount,
		CommissionRate: seller.CommissionRate,
		IsActive:       seller.IsActive,
		CreatedAt:      seller.CreatedAt,
		UpdatedAt:      seller.UpdatedAt,
	}
	if seller.User != nil {
		dto.Username = seller.User.Username
		dto.Name = seller.User.Name
	}
	return dto
}
