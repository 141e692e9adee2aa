package application

import (
	"context"
	"sync"
	"time"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// ReportService serves the admin dashboard and report screens: daily and
// monthly report rows, the live-visitor count, persisted filter
// preferences, and the aggregated dashboard snapshot.
type ReportService struct {
	store  ports.StoreClient
	prefs  ports.PreferenceRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewReportService creates a report service.
func NewReportService(store ports.StoreClient, prefs ports.PreferenceRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		prefs:  prefs,
		logger: logger,
		now:    time.Now,
	}
}

// Daily returns daily report rows, optionally filtered to one date
// (YYYY-MM-DD).
func (s *ReportService) Daily(ctx context.Context, creds *domain.CredentialRecord, date string) ([]domain.Report, error) {
	return s.store.DailyReports(ctx, creds, date)
}

// Monthly returns monthly report rows for a year/month filter.
func (s *ReportService) Monthly(ctx context.Context, creds *domain.CredentialRecord, year, month string) ([]domain.Report, error) {
	return s.store.MonthlyReports(ctx, creds, year, month)
}

// LiveVisitors returns the current visitor count.
func (s *ReportService) LiveVisitors(ctx context.Context, creds *domain.CredentialRecord) (*domain.VisitorStats, error) {
	return s.store.LiveVisitors(ctx, creds)
}

// Preferences returns the device's stored report filters.
func (s *ReportService) Preferences(ctx context.Context, deviceID string) (*domain.ReportPrefs, error) {
	return s.prefs.Get(ctx, deviceID)
}

// SavePreferences stores the device's report filters.
func (s *ReportService) SavePreferences(ctx context.Context, deviceID string, prefs *domain.ReportPrefs) error {
	return s.prefs.Save(ctx, deviceID, prefs)
}

// Dashboard fetches users, orders, products and daily reports
// concurrently and derives the headline figures. A failure in any one
// fetch substitutes an empty default instead of failing the snapshot —
// partial tolerance, not all-or-nothing.
func (s *ReportService) Dashboard(ctx context.Context, creds *domain.CredentialRecord) *domain.DashboardStats {
	stats := &domain.DashboardStats{
		Users:    []domain.User{},
		Orders:   []domain.Order{},
		Products: []domain.Product{},
		Reports:  []domain.Report{},
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		if users, err := s.store.ListUsers(ctx, creds); err != nil {
			s.logger.Warn().Err(err).Msg("Dashboard: users fetch failed, using empty default")
		} else if users != nil {
			stats.Users = users
		}
	}()
	go func() {
		defer wg.Done()
		if orders, err := s.store.ListOrders(ctx, creds); err != nil {
			s.logger.Warn().Err(err).Msg("Dashboard: orders fetch failed, using empty default")
		} else if orders != nil {
			stats.Orders = orders
		}
	}()
	go func() {
		defer wg.Done()
		if products, err := s.store.ListProducts(ctx, creds); err != nil {
			s.logger.Warn().Err(err).Msg("Dashboard: products fetch failed, using empty default")
		} else if products != nil {
			stats.Products = products
		}
	}()
	go func() {
		defer wg.Done()
		if reports, err := s.store.DailyReports(ctx, creds, ""); err != nil {
			s.logger.Warn().Err(err).Msg("Dashboard: reports fetch failed, using empty default")
		} else if reports != nil {
			stats.Reports = reports
		}
	}()

	wg.Wait()

	stats.TotalStock = TotalStock(stats.Products)
	stats.LowStockCount = LowStockCount(stats.Products)

	now := s.now()
	for _, r := range stats.Reports {
		stats.TotalSales += r.TotalSales
		stats.TotalProfit += r.TotalProfit
		stats.TotalOrders += r.TotalOrders
		if r.WithinDays(now, 7) {
			stats.RecentReports++
		}
	}

	return stats
}
