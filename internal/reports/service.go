package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/internal/sellers"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
)

const topSellerLimit = 5

// DirectSaleLabel names report rows for orders placed without a seller.
const DirectSaleLabel = "Direct Sale"

// Service exposes sales reporting and the dashboard snapshot.
type Service interface {
	Summary(ctx context.Context, input SummaryInput) (*SummaryDTO, error)
	Dashboard(ctx context.Context, input DashboardInput) (*DashboardDTO, error)
}

// SummaryInput selects the reporting window and optional seller scope.
// From and To are calendar dates; To is inclusive through end of day.
type SummaryInput struct {
	From       time.Time
	To         time.Time
	SellerID   *uuid.UUID
	DirectOnly bool
}

// DashboardInput scopes the snapshot. SellerID is set for seller accounts,
// which see their own commission instead of house profit.
type DashboardInput struct {
	From     time.Time
	To       time.Time
	SellerID *uuid.UUID
}

type service struct {
	repo        Repository
	sellersRepo sellers.Repository
}

// NewService constructs a reports service instance.
func NewService(repo Repository, sellersRepo sellers.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if sellersRepo == nil {
		return nil, fmt.Errorf("sellers repository required")
	}
	return &service{repo: repo, sellersRepo: sellersRepo}, nil
}

func (s *service) Summary(ctx context.Context, input SummaryInput) (*SummaryDTO, error) {
	from, to, err := normalizeWindow(input.From, input.To)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.CompletedBetween(ctx, from, to, SellerFilter{
		SellerID:   input.SellerID,
		DirectOnly: input.DirectOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: report query")
	}

	summary := &SummaryDTO{From: from, To: to}
	rows := map[string]*SellerBreakdownRow{}
	for _, order := range orders {
		units := order.Items.Units()
		summary.Orders++
		summary.Units += units
		summary.RevenueCents += order.TotalValueCents
		summary.CostCents += order.TotalCostCents
		summary.ProfitCents += order.TotalProfitCents
		summary.CommissionCents += order.SellerCommissionCents

		row := breakdownRow(rows, order.SellerID)
		row.Orders++
		row.Units += units
		row.SalesCents += order.TotalValueCents
		row.ProfitCents += order.TotalProfitCents
		row.CommissionCents += order.SellerCommissionCents
	}
	summary.NetProfitCents = summary.ProfitCents - summary.CommissionCents

	summary.Sellers, err = s.resolveRows(ctx, rows)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Dashboard returns the pipeline counts plus the sales snapshot for the
// window. Seller accounts see their own commission as the earnings figure.
func (s *service) Dashboard(ctx context.Context, input DashboardInput) (*DashboardDTO, error) {
	from, to, err := normalizeWindow(input.From, input.To)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.CountByStatus(ctx, enums.OrderStatusPendingPayment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count pending")
	}
	confirmed, err := s.repo.CountByStatus(ctx, enums.OrderStatusConfirmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count confirmed")
	}

	summary, err := s.Summary(ctx, SummaryInput{From: from, To: to, SellerID: input.SellerID})
	if err != nil {
		return nil, err
	}

	dashboard := &DashboardDTO{
		PendingPaymentCount: pending,
		AwaitingDispatch:    confirmed,
		Orders:              summary.Orders,
		Units:               summary.Units,
		RevenueCents:        summary.RevenueCents,
		NetProfitCents:      summary.NetProfitCents,
		CommissionCents:     summary.CommissionCents,
	}
	if input.SellerID == nil {
		top := summary.Sellers
		if len(top) > topSellerLimit {
			top = top[:topSellerLimit]
		}
		dashboard.TopSellers = top
	}
	return dashboard, nil
}

// resolveRows attaches seller names and orders the breakdown by sales.
func (s *service) resolveRows(ctx context.Context, rows map[string]*SellerBreakdownRow) ([]SellerBreakdownRow, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if row.SellerID != nil {
			ids = append(ids, *row.SellerID)
		}
	}

	byID := map[uuid.UUID]models.Seller{}
	if len(ids) > 0 {
		found, err := s.sellersRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sellers")
		}
		for _, seller := range found {
			byID[seller.ID] = seller
		}
	}

	result := make([]SellerBreakdownRow, 0, len(rows))
	for _, row := range rows {
		if row.SellerID == nil {
			row.SellerName = DirectSaleLabel
		} else if seller, ok := byID[*row.SellerID]; ok {
			row.SellerName = "Inactive Seller"
			if seller.User != nil && seller.User.Name != "" {
				row.SellerName = seller.User.Name
			}
			row.CommissionRate = seller.CommissionRate
		} else {
			// Seller row was removed after the sale; keep the revenue visible.
			row.SellerName = "Inactive Seller"
		}
		result = append(result, *row)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].SalesCents != result[j].SalesCents {
			return result[i].SalesCents > result[j].SalesCents
		}
		return result[i].SellerName < result[j].SellerName
	})
	return result, nil
}

func breakdownRow(rows map[string]*SellerBreakdownRow, sellerID *uuid.UUID) *SellerBreakdownRow {
	key := ""
	if sellerID != nil {
		key = sellerID.String()
	}
	row, ok := rows[key]
	if !ok {
		row = &SellerBreakdownRow{SellerID: sellerID}
		rows[key] = row
	}
	return row
}

// normalizeWindow validates the date range and stretches To through the
// final instant of its day so same-day reports include the whole day.
func normalizeWindow(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "report window requires both dates")
	}
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), to.Location())
	if toDay.Before(fromDay) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "report window end precedes start")
	}
	return fromDay, toDay, nil
}
