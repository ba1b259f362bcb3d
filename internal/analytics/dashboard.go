package analytics

import (
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// Each chart ignores the criterion it is itself used to select, so the chosen
// bar or slice stays visible next to its siblings. Totals and the orders table
// apply every criterion.
var (
	statusScope     = []domain.Dimension{domain.DimensionStatus}
	collectionScope = []domain.Dimension{domain.DimensionCollection}
	branchScope     = []domain.Dimension{domain.DimensionBranch}
	monthlyScope    = []domain.Dimension{domain.DimensionMonth}
	departmentScope = []domain.Dimension{domain.DimensionDepartment, domain.DimensionCategory}
)

// TargetYear picks the year shown by the monthly chart.
func TargetYear(criteria domain.Criteria, defaultYear int) int {
	if criteria.Year != 0 {
		return criteria.Year
	}
	return defaultYear
}

// SalesStats computes the summary cards and the small breakdown charts.
func (e *Engine) SalesStats(records []domain.Record, criteria domain.Criteria) domain.SalesStats {
	return domain.SalesStats{
		Totals:              e.Totals(e.Filter(records, criteria)),
		StatusBreakdown:     e.StatusBreakdown(e.Filter(records, criteria.Without(statusScope...))),
		CollectionBreakdown: e.CollectionBreakdown(e.Filter(records, criteria.Without(collectionScope...))),
		BranchRevenue:       e.BranchRevenue(e.Filter(records, criteria.Without(branchScope...))),
	}
}

// SalesDepartments returns the flat and the hierarchical department views.
func (e *Engine) SalesDepartments(records []domain.Record, criteria domain.Criteria) ([]domain.DepartmentShare, []domain.DepartmentNode) {
	scoped := e.Filter(records, criteria.Without(departmentScope...))
	return e.DepartmentBreakdown(scoped), e.DepartmentTree(scoped)
}

// SalesMonthly returns the monthly series for the target year.
func (e *Engine) SalesMonthly(records []domain.Record, criteria domain.Criteria, year int) []domain.MonthlyRevenue {
	return MonthlyRevenue(e.Filter(records, criteria.Without(monthlyScope...)), year)
}

// SalesDashboard composes every sales view for one set of criteria.
func (e *Engine) SalesDashboard(records []domain.Record, criteria domain.Criteria, defaultYear, orderLimit int) domain.SalesDashboard {
	stats := e.SalesStats(records, criteria)
	departments, tree := e.SalesDepartments(records, criteria)
	year := TargetYear(criteria, defaultYear)

	return domain.SalesDashboard{
		Criteria:            criteria,
		ReferenceDate:       e.today.Format("2006-01-02"),
		Totals:              stats.Totals,
		StatusBreakdown:     stats.StatusBreakdown,
		CollectionBreakdown: stats.CollectionBreakdown,
		BranchRevenue:       stats.BranchRevenue,
		Departments:         departments,
		DepartmentTree:      tree,
		MonthlyYear:         year,
		MonthlyRevenue:      e.SalesMonthly(records, criteria, year),
		Orders:              e.OrderTable(e.Filter(records, criteria), orderLimit),
	}
}

// InvoiceDashboard composes the invoice page with the same cross-filter rules.
func (e *Engine) InvoiceDashboard(records []domain.Record, criteria domain.Criteria, defaultYear int) domain.InvoiceDashboard {
	year := TargetYear(criteria, defaultYear)

	return domain.InvoiceDashboard{
		Criteria:        criteria,
		ReferenceDate:   e.today.Format("2006-01-02"),
		Summary:         InvoiceSummary(e.Filter(records, criteria)),
		StatusBreakdown: e.StatusBreakdown(e.Filter(records, criteria.Without(statusScope...))),
		BranchAmounts:   e.BranchRevenue(e.Filter(records, criteria.Without(branchScope...))),
		MonthlyYear:     year,
		MonthlyAmounts:  MonthlyRevenue(e.Filter(records, criteria.Without(monthlyScope...)), year),
	}
}
