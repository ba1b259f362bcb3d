package analytics

import (
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testToday = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newTestEngine() *Engine {
	return NewEngine(NewMapper(DefaultTaxonomy()), testToday)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

// sampleRecords is a small mixed batch covering both collections, several
// branches and every status category.
func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			ID: "SO-001", Status: "To Deliver and Bill", Amount: amount(1000),
			CostCenter: "JKT001", Collection: domain.CollectionIndustry, Department: "UNIT BLOWER - IDS",
			TransactionDate: date(2025, time.March, 15), OrderDate: date(2025, time.March, 1), DueDate: date(2025, time.July, 1),
		},
		{
			ID: "SO-002", Status: "Completed", Amount: amount(2000),
			CostCenter: "SBY010", Collection: domain.CollectionIndustry, Department: "SERVICE BLOWER - IDS",
			TransactionDate: date(2025, time.March, 20), OrderDate: date(2025, time.February, 10),
		},
		{
			ID: "SO-003", Status: "To Deliver", Amount: amount(500),
			CostCenter: "SMG002", Collection: domain.CollectionIndustry, Department: "ELECTRICAL PANEL - IDS",
			TransactionDate: date(2025, time.April, 2), OrderDate: date(2025, time.January, 5), DueDate: date(2025, time.May, 1),
		},
		{
			ID: "SO-004", Status: "To Bill", Amount: amount(700),
			CostCenter: "JBR100", Collection: domain.CollectionAutomotive, Department: "OTOMOTIF JEMBER - IDS",
			TransactionDate: date(2024, time.December, 30), OrderDate: date(2024, time.December, 1),
		},
		{
			ID: "SO-005", Status: "", Amount: amount(300),
			CostCenter: "SBY-PG", Collection: domain.CollectionIndustry, Department: "",
			TransactionDate: nil, OrderDate: nil,
		},
		{
			ID: "SO-006", Status: "To Deliver", Amount: amount(800),
			CostCenter: "XYZ999", Collection: domain.CollectionIndustry, Department: "SPARE PART VACUUM - IDS",
			TransactionDate: date(2025, time.April, 18), OrderDate: date(2025, time.April, 1), DueDate: date(2025, time.August, 1),
		},
	}
}
