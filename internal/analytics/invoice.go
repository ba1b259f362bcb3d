package analytics

import (
	"sort"
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const unknownLabel = "Unknown"

// InvoiceSummary computes payment totals over invoice records. An invoice is
// paid when its status says so; outstanding amount is total minus paid amount.
// Breakdowns group by the raw labels, with blanks reported as "Unknown".
func InvoiceSummary(records []domain.Record) domain.InvoiceSummary {
	summary := domain.InvoiceSummary{
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
	}

	statuses := make(map[string]*domain.InvoiceStatusCount)
	collections := make(map[string]int)
	departments := make(map[string]int)

	for _, r := range records {
		summary.TotalInvoices++
		if IsPaid(r.Status) {
			summary.PaidInvoices++
		}
		summary.TotalAmount = summary.TotalAmount.Add(r.Amount)
		summary.PaidAmount = summary.PaidAmount.Add(r.PaidAmount)

		status := labelOrUnknown(r.Status)
		entry, ok := statuses[status]
		if !ok {
			entry = &domain.InvoiceStatusCount{Status: status, Amount: decimal.Zero}
			statuses[status] = entry
		}
		entry.Count++
		entry.Amount = entry.Amount.Add(r.Amount)

		collections[labelOrUnknown(r.Collection)]++
		departments[labelOrUnknown(r.Department)]++
	}

	summary.OutstandingInvoices = summary.TotalInvoices - summary.PaidInvoices
	summary.OutstandingAmount = summary.TotalAmount.Sub(summary.PaidAmount)

	summary.StatusBreakdown = make([]domain.InvoiceStatusCount, 0, len(statuses))
	for _, entry := range statuses {
		summary.StatusBreakdown = append(summary.StatusBreakdown, *entry)
	}
	sort.Slice(summary.StatusBreakdown, func(i, j int) bool {
		a, b := summary.StatusBreakdown[i], summary.StatusBreakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Status < b.Status
	})

	summary.CollectionBreakdown = rankedCounts(collections, len(records))
	summary.DepartmentBreakdown = rankedCounts(departments, len(records))
	return summary
}

func rankedCounts(counts map[string]int, total int) []domain.NamedCount {
	out := make([]domain.NamedCount, 0, len(counts))
	for name, value := range counts {
		out = append(out, domain.NamedCount{
			Name:       name,
			Value:      value,
			Percentage: countPercent(value, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func labelOrUnknown(label string) string {
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		return trimmed
	}
	return unknownLabel
}
