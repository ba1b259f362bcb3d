package service

import (
	"context"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// RefreshPublisher announces that the underlying records changed.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, reason string) error
}

// Options tunes the dashboard views.
type Options struct {
	// DefaultYear is the monthly chart year when no year is selected; 0 means the current year.
	DefaultYear int
	OrderLimit  int
}

type SalesService struct {
	source    repository.SalesOrderSource
	cache     cache.DashboardCache
	clock     clock.Clock
	mapper    *analytics.Mapper
	publisher RefreshPublisher
	opts      Options
}

func NewSalesService(source repository.SalesOrderSource, cacheImpl cache.DashboardCache, clk clock.Clock, mapper *analytics.Mapper, opts Options) *SalesService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if clk == nil {
		clk = clock.New(time.UTC)
	}
	if mapper == nil {
		mapper = analytics.NewMapper(analytics.DefaultTaxonomy())
	}
	if opts.OrderLimit <= 0 {
		opts.OrderLimit = analytics.DefaultOrderTableLimit
	}
	return &SalesService{source: source, cache: cacheImpl, clock: clk, mapper: mapper, opts: opts}
}

// WithPublisher attaches the refresh event publisher.
func (s *SalesService) WithPublisher(p RefreshPublisher) *SalesService {
	s.publisher = p
	return s
}

func (s *SalesService) engine() *analytics.Engine {
	return analytics.NewEngine(s.mapper, s.clock.Now())
}

func (s *SalesService) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	orders, err := s.source.ListSalesOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]domain.SalesOrder, 0)
	}
	return orders, nil
}

func (s *SalesService) records(ctx context.Context) ([]domain.Record, error) {
	orders, err := s.source.ListSalesOrders(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SalesRecords(orders), nil
}

func (s *SalesService) GetStats(ctx context.Context, criteria domain.Criteria) (domain.SalesStats, error) {
	e := s.engine()
	return cached(ctx, s.cache, cache.BuildKey("sales-stats", criteria, e.Today()), func() (domain.SalesStats, error) {
		records, err := s.records(ctx)
		if err != nil {
			return domain.SalesStats{}, err
		}
		return e.SalesStats(records, criteria), nil
	})
}

// MonthlySeries is the monthly chart payload. Year is 0 for the all-years history.
type MonthlySeries struct {
	Year   int                     `json:"year"`
	Series []domain.MonthlyRevenue `json:"series"`
}

// GetMonthlyRevenue returns twelve months of the target year, or every month
// with records when history is requested and nothing else is selected.
func (s *SalesService) GetMonthlyRevenue(ctx context.Context, criteria domain.Criteria, history bool) (MonthlySeries, error) {
	e := s.engine()
	records, err := s.records(ctx)
	if err != nil {
		return MonthlySeries{}, err
	}

	if history && criteria.IsEmpty() {
		return MonthlySeries{Series: analytics.MonthlyRevenueHistory(records)}, nil
	}

	year := analytics.TargetYear(criteria, s.defaultYear(e))
	return MonthlySeries{Year: year, Series: e.SalesMonthly(records, criteria, year)}, nil
}

func (s *SalesService) GetDepartments(ctx context.Context, criteria domain.Criteria) ([]domain.DepartmentShare, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	flat, _ := s.engine().SalesDepartments(records, criteria)
	return flat, nil
}

func (s *SalesService) GetDepartmentTree(ctx context.Context, criteria domain.Criteria) ([]domain.DepartmentNode, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	_, tree := s.engine().SalesDepartments(records, criteria)
	return tree, nil
}

func (s *SalesService) GetOrders(ctx context.Context, criteria domain.Criteria, limit int) ([]domain.OrderRow, error) {
	if limit <= 0 {
		limit = s.opts.OrderLimit
	}
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	e := s.engine()
	return e.OrderTable(e.Filter(records, criteria), limit), nil
}

func (s *SalesService) GetDashboard(ctx context.Context, criteria domain.Criteria) (domain.SalesDashboard, error) {
	e := s.engine()
	return cached(ctx, s.cache, cache.BuildKey("sales-dashboard", criteria, e.Today()), func() (domain.SalesDashboard, error) {
		records, err := s.records(ctx)
		if err != nil {
			return domain.SalesDashboard{}, err
		}
		return e.SalesDashboard(records, criteria, s.defaultYear(e), s.opts.OrderLimit), nil
	})
}

// InvalidateCache drops every memoized view.
func (s *SalesService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

// Refresh drops cached views and tells other instances to do the same.
func (s *SalesService) Refresh(ctx context.Context, reason string) error {
	if err := s.InvalidateCache(ctx); err != nil {
		return err
	}
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishRefresh(ctx, reason); err != nil {
		log.Warn().Err(err).Msg("sales dashboard: publish refresh event failed")
	}
	return nil
}

func (s *SalesService) defaultYear(e *analytics.Engine) int {
	if s.opts.DefaultYear != 0 {
		return s.opts.DefaultYear
	}
	return e.Today().Year()
}

// cached serves key from c when present and stores the computed value otherwise.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c cache.DashboardCache, key string, compute func() (T, error)) (T, error) {
	var hit T
	if ok, err := c.Get(ctx, key, &hit); err == nil && ok {
		return hit, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dashboard: cache get failed")
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dashboard: cache set failed")
	}
	return value, nil
}
