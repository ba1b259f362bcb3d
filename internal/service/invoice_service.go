package service

import (
	"context"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
)

type InvoiceService struct {
	source repository.InvoiceSource
	cache  cache.DashboardCache
	clock  clock.Clock
	mapper *analytics.Mapper
	opts   Options
}

func NewInvoiceService(source repository.InvoiceSource, cacheImpl cache.DashboardCache, clk clock.Clock, mapper *analytics.Mapper, opts Options) *InvoiceService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if clk == nil {
		clk = clock.New(time.UTC)
	}
	if mapper == nil {
		mapper = analytics.NewMapper(analytics.DefaultTaxonomy())
	}
	return &InvoiceService{source: source, cache: cacheImpl, clock: clk, mapper: mapper, opts: opts}
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.source.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = make([]domain.Invoice, 0)
	}
	return invoices, nil
}

func (s *InvoiceService) records(ctx context.Context) ([]domain.Record, error) {
	invoices, err := s.source.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return domain.InvoiceRecords(invoices), nil
}

// GetSummary returns the invoice summary of the records matching criteria.
func (s *InvoiceService) GetSummary(ctx context.Context, criteria domain.Criteria) (domain.InvoiceSummary, error) {
	e := analytics.NewEngine(s.mapper, s.clock.Now())
	return cached(ctx, s.cache, cache.BuildKey("invoice-summary", criteria, e.Today()), func() (domain.InvoiceSummary, error) {
		records, err := s.records(ctx)
		if err != nil {
			return domain.InvoiceSummary{}, err
		}
		return analytics.InvoiceSummary(e.Filter(records, criteria)), nil
	})
}

func (s *InvoiceService) GetDashboard(ctx context.Context, criteria domain.Criteria) (domain.InvoiceDashboard, error) {
	e := analytics.NewEngine(s.mapper, s.clock.Now())
	return cached(ctx, s.cache, cache.BuildKey("invoice-dashboard", criteria, e.Today()), func() (domain.InvoiceDashboard, error) {
		records, err := s.records(ctx)
		if err != nil {
			return domain.InvoiceDashboard{}, err
		}
		year := s.opts.DefaultYear
		if year == 0 {
			year = e.Today().Year()
		}
		return e.InvoiceDashboard(records, criteria, year), nil
	})
}
