package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/internal/books"
	"github.com/manuslibros/libros-backend/internal/shipping"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/pagination"
	"github.com/manuslibros/libros-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sellerLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
}

// Service defines the order pipeline operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, input ListOrdersInput) (*OrderListResult, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
	UpdateDiscount(ctx context.Context, orderID uuid.UUID, newDiscountCents int64) (*OrderDTO, error)
	ConfirmPayment(ctx context.Context, orderID uuid.UUID, input ConfirmPaymentInput) (*OrderDTO, error)
	Dispatch(ctx context.Context, orderID uuid.UUID, input DispatchInput) (*OrderDTO, error)
}

// ListOrdersInput filters order listings.
type ListOrdersInput struct {
	Status     *enums.OrderStatus
	SellerID   *uuid.UUID
	From       *time.Time
	To         *time.Time
	Pagination pagination.Params
}

type service struct {
	repo    Repository
	tx      txRunner
	books   books.Repository
	sellers sellerLoader
	now     func() time.Time
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, bookRepo books.Repository, sellers sellerLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if bookRepo == nil {
		return nil, fmt.Errorf("books repository required")
	}
	if sellers == nil {
		return nil, fmt.Errorf("seller loader required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		books:   bookRepo,
		sellers: sellers,
		now:     time.Now,
	}, nil
}

// Create prices the cart, snapshots the items, and stores the order as
// pending payment. Stock is only decremented later, at payment confirmation.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	customer, err := validateCustomer(input.Customer)
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	if input.DiscountCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}
	if !input.ShippingMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}

	quantities, bookIDs, err := mergeQuantities(input.Items)
	if err != nil {
		return nil, err
	}

	commissionRate := decimal.Zero
	if input.SellerID != nil {
		seller, err := s.findSeller(ctx, *input.SellerID)
		if err != nil {
			return nil, err
		}
		if !seller.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller is inactive")
		}
		commissionRate = seller.CommissionRate
	}

	items, err := s.buildItems(ctx, bookIDs, quantities)
	if err != nil {
		return nil, err
	}

	shippingCents, err := shipping.PriceFor(customer.Zip, input.ShippingMethod)
	if err != nil {
		return nil, err
	}

	totals := computeTotals(items, input.DiscountCents, shippingCents)

	order := &models.Order{
		PlacedAt:              s.now().UTC(),
		Customer:              *customer,
		Items:                 items,
		SellerID:              input.SellerID,
		DiscountCents:         input.DiscountCents,
		ShippingCents:         shippingCents,
		ShippingMethod:        input.ShippingMethod,
		Status:                enums.OrderStatusPendingPayment,
		TotalValueCents:       totals.TotalValueCents,
		TotalCostCents:        totals.TotalCostCents,
		TotalProfitCents:      totals.ProfitCents,
		SellerCommissionCents: commissionCents(totals.ProfitCents, commissionRate),
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
	}

	dto := toOrderDTO(*created)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, s.repo, orderID)
	if err != nil {
		return nil, err
	}
	dto := toOrderDTO(*order)
	return &dto, nil
}

func (s *service) List(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	found, err := s.repo.List(ctx, ListQuery{
		Status:   input.Status,
		SellerID: input.SellerID,
		From:     input.From,
		To:       input.To,
		Cursor:   cursor,
		Limit:    limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}

	result := &OrderListResult{Items: make([]OrderDTO, 0, len(found))}
	hasMore := len(found) > limit
	if hasMore {
		found = found[:limit]
	}
	for _, order := range found {
		result.Items = append(result.Items, toOrderDTO(order))
	}
	if hasMore {
		last := found[len(found)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &next
	}
	return result, nil
}

// Delete is only permitted before payment. Confirmed orders already moved
// stock and must stay on the books.
func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.findOrder(ctx, s.repo, orderID)
	if err != nil {
		return err
	}
	if order.Status != enums.OrderStatusPendingPayment {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be deleted")
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order")
	}
	return nil
}

// UpdateDiscount reprices a pending order in place. The prior discount is
// backed out before the new one is applied, and the commission follows the
// seller's current rate.
func (s *service) UpdateDiscount(ctx context.Context, orderID uuid.UUID, newDiscountCents int64) (*OrderDTO, error) {
	if newDiscountCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	var updated *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status != enums.OrderStatusPendingPayment {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "discount can only change while payment is pending")
		}

		totalValue, profit := rediscountedTotals(
			order.TotalValueCents, order.TotalProfitCents,
			order.DiscountCents, newDiscountCents,
		)

		commission := int64(0)
		if order.SellerID != nil {
			if seller, err := s.sellers.FindByID(ctx, *order.SellerID); err == nil && seller.IsActive {
				commission = commissionCents(profit, seller.CommissionRate)
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find seller")
			}
		}

		order.DiscountCents = newDiscountCents
		order.TotalValueCents = totalValue
		order.TotalProfitCents = profit
		order.SellerCommissionCents = commission

		saved, err := repo.Update(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}
		updated = saved
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := toOrderDTO(*updated)
	return &dto, nil
}

// ConfirmPayment records the receipt and moves stock, all in one transaction.
// Bundles decrement each component; plain books decrement themselves. Stock
// clamps at zero so oversold titles never go negative.
func (s *service) ConfirmPayment(ctx context.Context, orderID uuid.UUID, input ConfirmPaymentInput) (*OrderDTO, error) {
	if strings.TrimSpace(input.Receipt.FileName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt file name is required")
	}

	var updated *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		txBooks := s.books.WithTx(tx)

		order, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status != enums.OrderStatusPendingPayment {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment can only be confirmed once, from pending")
		}

		receipt := input.Receipt
		receipt.UploadedAt = s.now().UTC().Format(time.RFC3339)
		order.Receipt = &receipt
		order.Status = enums.OrderStatusConfirmed

		saved, err := repo.Update(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}
		updated = saved

		for _, item := range order.Items {
			if err := s.decrementForItem(ctx, txBooks, item); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := toOrderDTO(*updated)
	return &dto, nil
}

// Dispatch records the tracking code and optional label, closing the pipeline.
func (s *service) Dispatch(ctx context.Context, orderID uuid.UUID, input DispatchInput) (*OrderDTO, error) {
	tracking := strings.ToUpper(strings.TrimSpace(input.TrackingCode))
	if tracking == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking code is required")
	}

	var updated *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.findOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status != enums.OrderStatusConfirmed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only confirmed orders can be dispatched")
		}

		order.TrackingCode = &tracking
		order.ShippingDocument = input.ShippingDocument
		order.Status = enums.OrderStatusShipped

		saved, err := repo.Update(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
		}
		updated = saved
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := toOrderDTO(*updated)
	return &dto, nil
}

func (s *service) decrementForItem(ctx context.Context, txBooks books.Repository, item types.OrderItem) error {
	if !item.IsBundle {
		if err := txBooks.DecrementStock(ctx, item.BookID, item.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
		}
		return nil
	}

	book, err := txBooks.FindByID(ctx, item.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Bundle was deleted after the order was placed. The snapshot
			// still fulfills; there is nothing left to decrement.
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find bundle")
	}
	for _, componentID := range book.ComponentIDs {
		if err := txBooks.DecrementStock(ctx, componentID, item.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement component stock")
		}
	}
	return nil
}

func (s *service) buildItems(ctx context.Context, bookIDs []uuid.UUID, quantities map[uuid.UUID]int) (types.OrderItems, error) {
	found, err := s.books.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load books")
	}
	byID := make(map[uuid.UUID]models.Book, len(found))
	for _, book := range found {
		byID[book.ID] = book
	}

	items := make(types.OrderItems, 0, len(bookIDs))
	for _, id := range bookIDs {
		book, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "book not found")
		}
		quantity := quantities[id]

		available := book.Stock
		if book.IsBundle {
			available, err = s.bundleAvailability(ctx, book)
			if err != nil {
				return nil, err
			}
		}
		if quantity > available {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("insufficient stock for %q", book.Title))
		}

		items = append(items, types.OrderItem{
			BookID:         book.ID,
			Title:          book.Title,
			Quantity:       quantity,
			UnitPriceCents: book.SalePriceCents,
			UnitCostCents:  book.CostPriceCents,
			IsBundle:       book.IsBundle,
		})
	}
	return items, nil
}

// bundleAvailability is the lowest component stock; a bundle can only ship
// as many times as its scarcest component.
func (s *service) bundleAvailability(ctx context.Context, bundle models.Book) (int, error) {
	if len(bundle.ComponentIDs) == 0 {
		return 0, nil
	}
	components, err := s.books.FindByIDs(ctx, bundle.ComponentIDs)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load components")
	}
	byID := make(map[uuid.UUID]models.Book, len(components))
	for _, component := range components {
		byID[component.ID] = component
	}

	available := -1
	for _, id := range bundle.ComponentIDs {
		component, ok := byID[id]
		if !ok {
			return 0, nil
		}
		if available < 0 || component.Stock < available {
			available = component.Stock
		}
	}
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (s *service) findSeller(ctx context.Context, sellerID uuid.UUID) (*models.Seller, error) {
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find seller")
	}
	return seller, nil
}

func (s *service) findOrder(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find order")
	}
	return order, nil
}

func validateCustomer(customer types.Customer) (*types.Customer, error) {
	name := strings.TrimSpace(customer.Name)
	address := strings.TrimSpace(customer.Address)
	phone := strings.TrimSpace(customer.Phone)
	if name == "" || address == "" || phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name, address, and phone are required")
	}
	zip, err := shipping.NormalizeZip(customer.Zip)
	if err != nil {
		return nil, err
	}
	return &types.Customer{
		Name:    name,
		Address: address,
		Zip:     zip,
		Phone:   phone,
		Email:   strings.TrimSpace(customer.Email),
	}, nil
}

func mergeQuantities(inputs []CreateOrderItemInput) (map[uuid.UUID]int, []uuid.UUID, error) {
	quantities := make(map[uuid.UUID]int, len(inputs))
	order := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		if input.Quantity <= 0 {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if _, seen := quantities[input.BookID]; !seen {
			order = append(order, input.BookID)
		}
		quantities[input.BookID] += input.Quantity
	}
	return quantities, order, nil
}
