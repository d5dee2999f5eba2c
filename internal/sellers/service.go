package sellers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/internal/users"
	"github.com/manuslibros/libros-backend/pkg/config"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/security"
)

const tempPasswordLength = 12

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// DefaultCommissionRate applies when a seller is created without an explicit rate.
var DefaultCommissionRate = decimal.NewFromInt(15)

var maxCommissionRate = decimal.NewFromInt(100)

// Service exposes seller roster management operations.
type Service interface {
	Create(ctx context.Context, input CreateSellerInput) (*CreatedSellerDTO, error)
	Update(ctx context.Context, sellerID uuid.UUID, input UpdateSellerInput) (*SellerDTO, error)
	Get(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*SellerDTO, error)
	List(ctx context.Context, activeOnly bool) ([]SellerDTO, error)
	Deactivate(ctx context.Context, sellerID uuid.UUID) error
}

// CreateSellerInput holds the validated payload to provision a seller.
type CreateSellerInput struct {
	Username       string
	Password       string
	Name           string
	Email          string
	Phone          string
	BankAccount    string
	CommissionRate *decimal.Decimal
}

// UpdateSellerInput holds optional mutation values for a seller profile.
type UpdateSellerInput struct {
	Name           *string
	Email          *string
	Phone          *string
	BankAccount    *string
	CommissionRate *decimal.Decimal
}

type service struct {
	repo      Repository
	usersRepo users.Repository
	tx        txRunner
	pwCfg     config.PasswordConfig
}

// NewService constructs a sellers service instance.
func NewService(repo Repository, usersRepo users.Repository, tx txRunner, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sellers repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		usersRepo: usersRepo,
		tx:        tx,
		pwCfg:     pwCfg,
	}, nil
}

// Create provisions the login account and the seller profile together.
func (s *service) Create(ctx context.Context, input CreateSellerInput) (*CreatedSellerDTO, error) {
	username := users.NormalizeUsername(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = username
	}

	rate := DefaultCommissionRate
	if input.CommissionRate != nil {
		rate = *input.CommissionRate
	}
	if err := validateRate(rate); err != nil {
		return nil, err
	}

	password := input.Password
	tempPassword := ""
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
		tempPassword = generated
	}
	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.Seller
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txUsers := s.usersRepo.WithTx(tx)
		txSellers := s.repo.WithTx(tx)

		if _, err := txUsers.FindByUsername(ctx, username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check username")
		}

		account := &models.User{
			Username:     username,
			PasswordHash: hash,
			Role:         enums.AccountRoleSeller,
			Name:         name,
			IsActive:     true,
		}
		if _, err := txUsers.Create(ctx, account); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
		}

		seller := &models.Seller{
			UserID:         account.ID,
			Email:          strings.TrimSpace(input.Email),
			Phone:          strings.TrimSpace(input.Phone),
			BankAccount:    strings.TrimSpace(input.BankAccount),
			CommissionRate: rate,
			IsActive:       true,
			User:           account,
		}
		inserted, err := txSellers.Create(ctx, seller)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert seller")
		}
		created = inserted
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := &CreatedSellerDTO{SellerDTO: toSellerDTO(*created), TempPassword: tempPassword}
	return dto, nil
}

func (s *service) Update(ctx context.Context, sellerID uuid.UUID, input UpdateSellerInput) (*SellerDTO, error) {
	seller, err := s.findSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		seller.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		seller.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.BankAccount != nil {
		seller.BankAccount = strings.TrimSpace(*input.BankAccount)
	}
	if input.CommissionRate != nil {
		if err := validateRate(*input.CommissionRate); err != nil {
			return nil, err
		}
		seller.CommissionRate = *input.CommissionRate
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.Name != nil && seller.User != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
			}
			seller.User.Name = name
			if _, err := s.usersRepo.WithTx(tx).Update(ctx, seller.User); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
			}
		}
		if _, err := s.repo.WithTx(tx).Update(ctx, seller); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update seller")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := toSellerDTO(*seller)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error) {
	seller, err := s.findSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	dto := toSellerDTO(*seller)
	return &dto, nil
}

func (s *service) GetByUserID(ctx context.Context, userID uuid.UUID) (*SellerDTO, error) {
	seller, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find seller")
	}
	dto := toSellerDTO(*seller)
	return &dto, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]SellerDTO, error) {
	found, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sellers")
	}
	result := make([]SellerDTO, 0, len(found))
	for _, seller := range found {
		result = append(result, toSellerDTO(seller))
	}
	return result, nil
}

// Deactivate retires the seller and its login without touching order history.
func (s *service) Deactivate(ctx context.Context, sellerID uuid.UUID) error {
	seller, err := s.findSeller(ctx, sellerID)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		seller.IsActive = false
		if _, err := s.repo.WithTx(tx).Update(ctx, seller); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate seller")
		}
		if err := s.usersRepo.WithTx(tx).SetActive(ctx, seller.UserID, false); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate user")
		}
		return nil
	})
}

func (s *service) findSeller(ctx context.Context, sellerID uuid.UUID) (*models.Seller, error) {
	seller, err := s.repo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find seller")
	}
	return seller, nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxCommissionRate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "commission rate must be between 0 and 100")
	}
	return nil
}
