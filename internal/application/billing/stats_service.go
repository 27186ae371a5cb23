package billing

import (
	"context"
	"time"

	"github.com/bizify/backend/internal/domain/billing"
	"github.com/bizify/backend/internal/domain/partner"
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const revenueMonths = 6

var hundred = decimal.NewFromInt(100)

// StatsService computes the invoice statistics and the dashboard.
// Revenue is the sum of paid invoice totals, bucketed by issue date in UTC.
type StatsService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(invoiceRepo billing.InvoiceRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
		now:          time.Now,
	}
}

type revenueSnapshot struct {
	counts    map[billing.InvoiceStatus]int64
	total     int64
	revenue   decimal.Decimal
	thisMonth decimal.Decimal
	lastMonth decimal.Decimal
	monthly   []MonthlyRevenue
}

func (s *StatsService) snapshot(ctx context.Context, ownerID uuid.UUID) (*revenueSnapshot, error) {
	counts, err := s.invoiceRepo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	snap := &revenueSnapshot{counts: counts}
	for _, n := range counts {
		snap.total += n
	}

	if snap.revenue, err = s.invoiceRepo.SumPaid(ctx, ownerID, nil, nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	if snap.thisMonth, err = s.invoiceRepo.SumPaid(ctx, ownerID, &monthStart, nil); err != nil {
		return nil, err
	}
	if snap.lastMonth, err = s.invoiceRepo.SumPaid(ctx, ownerID, &lastMonthStart, &monthStart); err != nil {
		return nil, err
	}

	snap.monthly = make([]MonthlyRevenue, 0, revenueMonths)
	for i := revenueMonths - 1; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		sum, err := s.invoiceRepo.SumPaid(ctx, ownerID, &start, &end)
		if err != nil {
			return nil, err
		}
		snap.monthly = append(snap.monthly, MonthlyRevenue{
			Month:   start.Format("Jan"),
			Revenue: billing.NewAmount(sum),
		})
	}
	return snap, nil
}

// InvoiceStats returns counts per status and revenue figures
func (s *StatsService) InvoiceStats(ctx context.Context, ownerID uuid.UUID) (*InvoiceStats, error) {
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &InvoiceStats{
		TotalInvoices:    snap.total,
		PaidInvoices:     snap.counts[billing.InvoiceStatusPaid],
		PendingInvoices:  snap.counts[billing.InvoiceStatusPending],
		OverdueInvoices:  snap.counts[billing.InvoiceStatusOverdue],
		TotalRevenue:     billing.NewAmount(snap.revenue),
		RevenueThisMonth: billing.NewAmount(snap.thisMonth),
		RevenueLastMonth: billing.NewAmount(snap.lastMonth),
		MonthlyRevenue:   snap.monthly,
	}, nil
}

// Dashboard returns the landing page summary. RevenueChange is the percentage
// change of this month's revenue against last month, 0 when last month is 0.
func (s *StatsService) Dashboard(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error) {
	customers, err := s.customerRepo.CountForOwner(ctx, ownerID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	paid := snap.counts[billing.InvoiceStatusPaid]
	pending := snap.counts[billing.InvoiceStatusPending]
	overdue := snap.counts[billing.InvoiceStatusOverdue]

	return &Dashboard{
		TotalCustomers:  customers,
		TotalInvoices:   snap.total,
		TotalRevenue:    billing.NewAmount(snap.revenue),
		RevenueChange:   billing.NewAmount(RevenueChange(snap.thisMonth, snap.lastMonth)),
		PendingInvoices: pending,
		PaidInvoices:    paid,
		OverdueInvoices: overdue,
		RevenueData:     snap.monthly,
		InvoiceStatusData: StatusBreakdown{
			Labels: []string{"Paid", "Pending", "Overdue"},
			Data:   []int64{paid, pending, overdue},
		},
	}, nil
}

// RevenueChange returns (current - previous) / previous × 100, or 0 when
// previous is not positive.
func RevenueChange(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Mul(hundred).Div(previous)
}
