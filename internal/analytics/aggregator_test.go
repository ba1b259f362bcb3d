package analytics

import (
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	totals := newTestEngine().Totals(sampleRecords())

	assert.Equal(t, 6, totals.Count)
	assert.Equal(t, 5, totals.NonCompletedCount)
	assertDecimal(t, "5300", totals.Revenue)
	assertDecimal(t, "3300", totals.NonCompletedRevenue)
}

func TestTotalsEmpty(t *testing.T) {
	totals := newTestEngine().Totals(nil)

	assert.Zero(t, totals.Count)
	assertDecimal(t, "0", totals.Revenue)
	assertDecimal(t, "0", totals.NonCompletedRevenue)
}

func TestStatusBreakdown(t *testing.T) {
	breakdown := newTestEngine().StatusBreakdown(sampleRecords())

	want := []domain.StatusCount{
		{Status: domain.StatusOverdue, Count: 1, Percentage: 17},
		{Status: domain.StatusToDeliverAndBill, Count: 2, Percentage: 33},
		{Status: domain.StatusToDeliver, Count: 1, Percentage: 17},
		{Status: domain.StatusToBill, Count: 1, Percentage: 17},
		{Status: domain.StatusCompleted, Count: 1, Percentage: 17},
	}
	assert.Equal(t, want, breakdown)
}

func TestStatusBreakdownCountsSumToTotal(t *testing.T) {
	e := newTestEngine()
	for _, criteria := range []domain.Criteria{{}, {Year: 2025}, {Collection: domain.CollectionAutomotive}, {Year: 1999}} {
		records := e.Filter(sampleRecords(), criteria)
		breakdown := e.StatusBreakdown(records)

		require.Len(t, breakdown, len(domain.StatusCategories))
		sum := 0
		for _, entry := range breakdown {
			sum += entry.Count
		}
		assert.Equal(t, len(records), sum)
	}
}

func TestStatusBreakdownEmptyHasZeroPercentages(t *testing.T) {
	for _, entry := range newTestEngine().StatusBreakdown(nil) {
		assert.Zero(t, entry.Count)
		assert.Zero(t, entry.Percentage)
	}
}

func TestCollectionBreakdown(t *testing.T) {
	breakdown := newTestEngine().CollectionBreakdown(sampleRecords())

	assert.Equal(t, []domain.NamedCount{
		{Name: domain.CollectionIndustry, Value: 5, Percentage: 83},
		{Name: domain.CollectionAutomotive, Value: 1, Percentage: 17},
	}, breakdown)
}

func TestBranchRevenue(t *testing.T) {
	revenue := newTestEngine().BranchRevenue(sampleRecords())

	names := make([]string, 0, len(revenue))
	values := make(map[string]decimal.Decimal)
	for _, entry := range revenue {
		names = append(names, entry.Name)
		values[entry.Name] = entry.Value
	}

	assert.Equal(t, []string{"JAKARTA", "SURABAYA", "SEMARANG", "MAKASSAR", "MEDAN", "JEMBER", "LAMPUNG", "SURABAYA-PG", "XYZ"}, names)
	assertDecimal(t, "1000", values["JAKARTA"])
	assertDecimal(t, "2000", values["SURABAYA"])
	assertDecimal(t, "500", values["SEMARANG"])
	assertDecimal(t, "0", values["MAKASSAR"])
	assertDecimal(t, "700", values["JEMBER"])
	assertDecimal(t, "300", values["SURABAYA-PG"])
	assertDecimal(t, "800", values["XYZ"])
}

func TestBranchRevenueAlwaysListsKnownBranches(t *testing.T) {
	revenue := newTestEngine().BranchRevenue(nil)

	require.Len(t, revenue, 8)
	for _, entry := range revenue {
		assertDecimal(t, "0", entry.Value)
	}
}

func TestDepartmentBreakdown(t *testing.T) {
	shares := newTestEngine().DepartmentBreakdown(sampleRecords())

	require.Len(t, shares, 4)
	assert.Equal(t, "BLOWER", shares[0].Name)
	assertDecimal(t, "3000", shares[0].Value)
	assert.Equal(t, 57, shares[0].Percentage)

	assert.Equal(t, "VACUUM", shares[1].Name)
	assert.Equal(t, 15, shares[1].Percentage)
	assert.Equal(t, DepartmentAutomotive, shares[2].Name)
	assert.Equal(t, 13, shares[2].Percentage)
	assert.Equal(t, "ELECTRICAL PANEL", shares[3].Name)
	assert.Equal(t, 9, shares[3].Percentage)
}

func TestDepartmentBreakdownSkipsUnknownCollections(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Collection: "Retail", Department: "UNIT BLOWER - IDS", Amount: amount(999)},
		{ID: "2", Collection: domain.CollectionIndustry, Department: "REWINDING - IDS", Amount: amount(100)},
	}

	shares := newTestEngine().DepartmentBreakdown(records)

	require.Len(t, shares, 1)
	assert.Equal(t, "REWINDING", shares[0].Name)
	assert.Equal(t, 100, shares[0].Percentage)
}

func TestDepartmentTree(t *testing.T) {
	tree := newTestEngine().DepartmentTree(sampleRecords())

	require.Len(t, tree, 4)
	blower := tree[0]
	assert.Equal(t, "BLOWER", blower.Name)
	assertDecimal(t, "3000", blower.Value)
	require.Len(t, blower.Children, 2)
	assert.Equal(t, CategoryService, blower.Children[0].Name)
	assert.Equal(t, 67, blower.Children[0].Percentage)
	assert.Equal(t, CategoryUnit, blower.Children[1].Name)
	assert.Equal(t, 33, blower.Children[1].Percentage)

	assert.Equal(t, DepartmentAutomotive, tree[2].Name)
	require.Len(t, tree[2].Children, 1)
	assert.Equal(t, CategoryService, tree[2].Children[0].Name)
	assert.Equal(t, 100, tree[2].Children[0].Percentage)
}

func TestDepartmentTreeParentEqualsSumOfChildren(t *testing.T) {
	records := append(sampleRecords(),
		domain.Record{ID: "X1", Collection: domain.CollectionIndustry, Department: "FABRIKASI INDUSTRIAL VACUUM - IDS", Amount: amount(333)},
		domain.Record{ID: "X2", Collection: domain.CollectionIndustry, Department: "UNIT VACUUM - IDS", Amount: amount(334)},
		domain.Record{ID: "X3", Collection: domain.CollectionIndustry, Department: "SERVICE VACUUM - IDS", Amount: amount(0)},
	)

	for _, node := range newTestEngine().DepartmentTree(records) {
		sum := decimal.Zero
		pct := 0
		for i, child := range node.Children {
			assert.False(t, child.Value.IsZero(), "zero child %s in %s", child.Name, node.Name)
			if i > 0 {
				assert.False(t, child.Value.GreaterThan(node.Children[i-1].Value), "children of %s not sorted", node.Name)
			}
			sum = sum.Add(child.Value)
			pct += child.Percentage
		}
		assert.True(t, node.Value.Equal(sum), "parent %s != sum of children", node.Name)
		assert.InDelta(t, 100, pct, float64(len(node.Children)))
	}
}

func TestMonthlyRevenue(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Amount: amount(600000), TransactionDate: date(2025, time.March, 3)},
		{ID: "2", Amount: amount(400000), TransactionDate: date(2025, time.March, 28)},
		{ID: "3", Amount: amount(50), TransactionDate: date(2024, time.March, 28)},
		{ID: "4", Amount: amount(70), TransactionDate: nil},
	}

	series := MonthlyRevenue(records, 2025)

	require.Len(t, series, 12)
	assert.Equal(t, "Jan 2025", series[0].Month)
	assert.Equal(t, "Dec 2025", series[11].Month)
	for i, entry := range series {
		if i == int(time.March)-1 {
			assert.Equal(t, "Mar 2025", entry.Month)
			assertDecimal(t, "1000000", entry.Revenue)
			continue
		}
		assertDecimal(t, "0", entry.Revenue)
	}
}

func TestMonthlyRevenueEmptyYearStillHasTwelveMonths(t *testing.T) {
	series := MonthlyRevenue(nil, 2030)

	require.Len(t, series, 12)
	for i, entry := range series {
		want := time.Date(2030, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format(domain.MonthLayout)
		assert.Equal(t, want, entry.Month)
	}
}

func TestMonthlyRevenueHistory(t *testing.T) {
	history := MonthlyRevenueHistory(sampleRecords())

	require.Len(t, history, 3)
	assert.Equal(t, "Dec 2024", history[0].Month)
	assertDecimal(t, "700", history[0].Revenue)
	assert.Equal(t, "Mar 2025", history[1].Month)
	assertDecimal(t, "3000", history[1].Revenue)
	assert.Equal(t, "Apr 2025", history[2].Month)
	assertDecimal(t, "1300", history[2].Revenue)
}

func TestOrderTable(t *testing.T) {
	rows := newTestEngine().OrderTable(sampleRecords(), 0)

	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.ID)
	}
	assert.Equal(t, []string{"SO-004", "SO-003", "SO-001", "SO-006", "SO-005", "SO-002"}, got)
	assert.Equal(t, domain.StatusOverdue, rows[1].Status)
	assert.Equal(t, "SEMARANG", rows[1].Branch)
}

func TestOrderTableLimit(t *testing.T) {
	var records []domain.Record
	for i := 0; i < DefaultOrderTableLimit+10; i++ {
		records = append(records, domain.Record{ID: "R", Status: "To Bill"})
	}

	assert.Len(t, newTestEngine().OrderTable(records, 0), DefaultOrderTableLimit)
	assert.Len(t, newTestEngine().OrderTable(records, 5), 5)
}
