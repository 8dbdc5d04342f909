// Package analytics assembles the dashboard summary. Unlike every other
// service it never surfaces an error: the dashboard renders zeros rather
// than blocking the home screen, including for unverified vendors whose
// analytics access is forbidden.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kadualabs/vendorhub/pkg/cache"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/rest"
)

const orderStatusPending = "pending"

// monthlyWindow is the lookback for the monthly revenue figure.
const monthlyWindow = 30 * 24 * time.Hour

type analyticsPayload struct {
	TotalProducts int              `json:"totalProducts"`
	TotalOrders   int              `json:"totalOrders"`
	TotalSales    *decimal.Decimal `json:"totalSales"`
}

// Order is the slice of an order record the dashboard needs.
type Order struct {
	ID        string      `json:"_id"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Items     []OrderItem `json:"items"`
}

type OrderItem struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type Service interface {
	Dashboard(ctx context.Context) models.DashboardStats
}

type service struct {
	api     *rest.Client
	queries *cache.Queries
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(api *rest.Client, queries *cache.Queries, logg *logger.Logger) Service {
	return &service{api: api, queries: queries, logg: logg, now: time.Now}
}

// Dashboard fetches analytics and recent orders together and folds them into
// one stats block. Any failure on either endpoint produces zeroed stats.
func (s *service) Dashboard(ctx context.Context) models.DashboardStats {
	stats, err := cache.Fetch(ctx, s.queries, cache.Key("dashboard", "stats"), s.fetchDashboard)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "dashboard stats unavailable, rendering zeros")
		}
		return zeroStats()
	}
	return stats
}

func (s *service) fetchDashboard(ctx context.Context) (models.DashboardStats, error) {
	analyticsEnvelope, err := s.api.GetJSON(ctx, "/vendor/analytics", nil)
	if err != nil {
		return zeroStats(), err
	}
	ordersEnvelope, err := s.api.GetJSON(ctx, "/vendor/orders", nil)
	if err != nil {
		return zeroStats(), err
	}

	var analytics analyticsPayload
	if err := analyticsEnvelope.DecodeData(&analytics); err != nil {
		return zeroStats(), err
	}
	var orders []Order
	if err := ordersEnvelope.DecodeData(&orders); err != nil {
		return zeroStats(), err
	}

	totalOrders := analytics.TotalOrders
	if totalOrders == 0 {
		totalOrders = len(orders)
	}
	totalRevenue := decimal.Zero
	if analytics.TotalSales != nil {
		totalRevenue = *analytics.TotalSales
	}

	return models.DashboardStats{
		TotalProducts:  analytics.TotalProducts,
		TotalOrders:    totalOrders,
		PendingOrders:  countPending(orders),
		TotalRevenue:   totalRevenue,
		MonthlyRevenue: monthlyRevenue(orders, s.now()),
	}, nil
}

func countPending(orders []Order) int {
	pending := 0
	for _, order := range orders {
		if order.Status == orderStatusPending {
			pending++
		}
	}
	return pending
}

// monthlyRevenue sums item line totals for orders placed within the window.
func monthlyRevenue(orders []Order, now time.Time) decimal.Decimal {
	cutoff := now.Add(-monthlyWindow)
	total := decimal.Zero
	for _, order := range orders {
		if order.CreatedAt.Before(cutoff) {
			continue
		}
		for _, item := range order.Items {
			if item.Quantity <= 0 {
				continue
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return total
}

func zeroStats() models.DashboardStats {
	return models.DashboardStats{
		TotalRevenue:   decimal.Zero,
		MonthlyRevenue: decimal.Zero,
	}
}
