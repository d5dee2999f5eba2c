package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryDTO aggregates the sales window requested by a report.
type SummaryDTO struct {
	From            time.Time            `json:"from"`
	To              time.Time            `json:"to"`
	Orders          int                  `json:"orders"`
	Units           int                  `json:"units"`
	RevenueCents    int64                `json:"revenue_cents"`
	CostCents       int64                `json:"cost_cents"`
	ProfitCents     int64                `json:"profit_cents"`
	CommissionCents int64                `json:"commission_cents"`
	NetProfitCents  int64                `json:"net_profit_cents"`
	Sellers         []SellerBreakdownRow `json:"sellers"`
}

// SellerBreakdownRow is one seller's slice of a report, ordered by sales.
// CommissionRate is the seller's current rate; direct-sale and removed
// seller rows report zero.
type SellerBreakdownRow struct {
	SellerID        *uuid.UUID      `json:"seller_id,omitempty"`
	SellerName      string          `json:"seller_name"`
	CommissionRate  decimal.Decimal `json:"commission_rate"`
	Orders          int             `json:"orders"`
	Units           int             `json:"units"`
	SalesCents      int64           `json:"sales_cents"`
	ProfitCents     int64           `json:"profit_cents"`
	CommissionCents int64           `json:"commission_cents"`
}

// DashboardDTO is the landing-page snapshot for the current window.
type DashboardDTO struct {
	PendingPaymentCount int64                `json:"pending_payment_count"`
	AwaitingDispatch    int64                `json:"awaiting_dispatch_count"`
	Orders              int                  `json:"orders"`
	Units               int                  `json:"units"`
	RevenueCents        int64                `json:"revenue_cents"`
	NetProfitCents      int64                `json:"net_profit_cents"`
	CommissionCents     int64                `json:"commission_cents"`
	TopSellers          []SellerBreakdownRow `json:"top_sellers,omitempty"`
}
