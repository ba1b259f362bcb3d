package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals are the headline numbers of a record set.
type Totals struct {
	Count               int             `json:"total_orders"`
	Revenue             decimal.Decimal `json:"total_revenue"`
	NonCompletedCount   int             `json:"non_completed_orders"`
	NonCompletedRevenue decimal.Decimal `json:"unearned_revenue"`
}

// StatusCount is one slice of the status pie chart.
type StatusCount struct {
	Status     StatusCategory `json:"status"`
	Count      int            `json:"count"`
	Percentage int            `json:"percentage"`
}

// NamedCount is a counted bucket with its rounded share of the total.
type NamedCount struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

// NamedValue is a monetary bucket, e.g. revenue for one branch.
type NamedValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DepartmentShare is a department or category bucket with its rounded share.
type DepartmentShare struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage int             `json:"percentage"`
}

// DepartmentNode is a department with its revenue split by business category.
// Value always equals the sum of the children.
type DepartmentNode struct {
	Name     string            `json:"name"`
	Value    decimal.Decimal   `json:"value"`
	Children []DepartmentShare `json:"children"`
}

type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OrderRow is one line of the orders table.
type OrderRow struct {
	ID           string          `json:"id"`
	Name         string          `json:"name,omitempty"`
	CustomerName string          `json:"customer_name"`
	OrderDate    *time.Time      `json:"order_date,omitempty"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	RawStatus    string          `json:"raw_status"`
	Status       StatusCategory  `json:"status"`
	Branch       string          `json:"branch"`
	Collection   string          `json:"collection,omitempty"`
	Department   string          `json:"department,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// SalesStats groups the summary cards and the small breakdown charts.
type SalesStats struct {
	Totals              Totals        `json:"totals"`
	StatusBreakdown     []StatusCount `json:"status_breakdown"`
	CollectionBreakdown []NamedCount  `json:"collection_breakdown"`
	BranchRevenue       []NamedValue  `json:"branch_revenue"`
}

// SalesDashboard is every view of the sales dashboard for one set of criteria.
type SalesDashboard struct {
	Criteria            Criteria          `json:"criteria"`
	ReferenceDate       string            `json:"reference_date"`
	Totals              Totals            `json:"totals"`
	StatusBreakdown     []StatusCount     `json:"status_breakdown"`
	CollectionBreakdown []NamedCount      `json:"collection_breakdown"`
	BranchRevenue       []NamedValue      `json:"branch_revenue"`
	Departments         []DepartmentShare `json:"departments"`
	DepartmentTree      []DepartmentNode  `json:"department_tree"`
	MonthlyYear         int               `json:"monthly_year"`
	MonthlyRevenue      []MonthlyRevenue  `json:"monthly_revenue"`
	Orders              []OrderRow        `json:"orders"`
}

// InvoiceStatusCount groups invoices by their raw ERP status.
type InvoiceStatusCount struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceSummary holds payment totals and breakdowns for a set of invoices.
type InvoiceSummary struct {
	TotalInvoices       int                  `json:"total_invoices"`
	PaidInvoices        int                  `json:"paid_invoices"`
	OutstandingInvoices int                  `json:"outstanding_invoices"`
	TotalAmount         decimal.Decimal      `json:"total_amount"`
	PaidAmount          decimal.Decimal      `json:"paid_amount"`
	OutstandingAmount   decimal.Decimal      `json:"outstanding_amount"`
	StatusBreakdown     []InvoiceStatusCount `json:"status_breakdown"`
	CollectionBreakdown []NamedCount         `json:"collection_breakdown"`
	DepartmentBreakdown []NamedCount         `json:"department_breakdown"`
}

// InvoiceDashboard is the invoice page: payment summary plus the shared views.
type InvoiceDashboard struct {
	Criteria        Criteria         `json:"criteria"`
	ReferenceDate   string           `json:"reference_date"`
	Summary         InvoiceSummary   `json:"summary"`
	StatusBreakdown []StatusCount    `json:"status_breakdown"`
	BranchAmounts   []NamedValue     `json:"branch_amounts"`
	MonthlyYear     int              `json:"monthly_year"`
	MonthlyAmounts  []MonthlyRevenue `json:"monthly_amounts"`
}
