package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const DefaultOrderTableLimit = 50

var hundred = decimal.NewFromInt(100)

// Totals computes the headline cards. Unearned revenue is the amount still
// attached to records that are not completed.
func (e *Engine) Totals(records []domain.Record) domain.Totals {
	totals := domain.Totals{Revenue: decimal.Zero, NonCompletedRevenue: decimal.Zero}
	for _, r := range records {
		totals.Count++
		totals.Revenue = totals.Revenue.Add(r.Amount)
		if e.Classify(r) != domain.StatusCompleted {
			totals.NonCompletedCount++
			totals.NonCompletedRevenue = totals.NonCompletedRevenue.Add(r.Amount)
		}
	}
	return totals
}

// StatusBreakdown counts records per status category. Every category is
// present, in priority order, even when its count is zero.
func (e *Engine) StatusBreakdown(records []domain.Record) []domain.StatusCount {
	counts := make(map[domain.StatusCategory]int, len(domain.StatusCategories))
	for _, r := range records {
		counts[e.Classify(r)]++
	}

	out := make([]domain.StatusCount, 0, len(domain.StatusCategories))
	for _, status := range domain.StatusCategories {
		out = append(out, domain.StatusCount{
			Status:     status,
			Count:      counts[status],
			Percentage: countPercent(counts[status], len(records)),
		})
	}
	return out
}

// CollectionBreakdown counts records per known collection. Records without a
// known collection still count towards the percentage base.
func (e *Engine) CollectionBreakdown(records []domain.Record) []domain.NamedCount {
	collections := e.mapper.tax.Collections
	counts := make(map[string]int, len(collections))
	for _, r := range records {
		counts[r.Collection]++
	}

	out := make([]domain.NamedCount, 0, len(collections))
	for _, name := range collections {
		out = append(out, domain.NamedCount{
			Name:       name,
			Value:      counts[name],
			Percentage: countPercent(counts[name], len(records)),
		})
	}
	return out
}

// BranchRevenue sums revenue per branch. Known branches are always listed in
// their fixed order; branches outside the table follow in first-seen order.
func (e *Engine) BranchRevenue(records []domain.Record) []domain.NamedValue {
	acc := newOrderedSums(e.mapper.tax.Branches)
	for _, r := range records {
		acc.add(e.mapper.BranchOf(r.CostCenter), r.Amount)
	}

	out := make([]domain.NamedValue, 0, len(acc.order))
	for _, name := range acc.order {
		out = append(out, domain.NamedValue{Name: name, Value: acc.sums[name]})
	}
	return out
}

// DepartmentBreakdown sums revenue per department over records of the known
// collections. Percentages are relative to the revenue of that scope; empty
// departments are dropped and the rest sorted by revenue, largest first.
func (e *Engine) DepartmentBreakdown(records []domain.Record) []domain.DepartmentShare {
	acc := newOrderedSums(e.mapper.tax.DepartmentOrder)
	total := decimal.Zero

	for _, r := range records {
		if !e.mapper.isKnownCollection(r.Collection) {
			continue
		}
		total = total.Add(r.Amount)

		department, ok := e.mapper.DepartmentOf(r.Department, r.Collection)
		if !ok {
			continue
		}
		acc.add(department, r.Amount)
	}

	out := make([]domain.DepartmentShare, 0, len(acc.order))
	for _, name := range acc.order {
		value := acc.sums[name]
		if value.IsZero() {
			continue
		}
		out = append(out, domain.DepartmentShare{
			Name:       name,
			Value:      value,
			Percentage: percentOf(value, total),
		})
	}

	sortSharesDesc(out)
	return out
}

// DepartmentTree splits department revenue by business category. A parent's
// value is the sum of its children and child percentages are relative to the
// parent. Records whose department cannot be resolved are left out.
func (e *Engine) DepartmentTree(records []domain.Record) []domain.DepartmentNode {
	tax := e.mapper.tax
	children := make(map[string]*orderedSums, len(tax.DepartmentOrder))
	parents := newOrderedSums(tax.DepartmentOrder)
	for _, department := range tax.DepartmentOrder {
		children[department] = newOrderedSums(tax.CategoryOrder)
	}

	for _, r := range records {
		if !e.mapper.isKnownCollection(r.Collection) {
			continue
		}
		department, ok := e.mapper.DepartmentOf(r.Department, r.Collection)
		if !ok {
			continue
		}

		parents.add(department, r.Amount)
		if _, seen := children[department]; !seen {
			children[department] = newOrderedSums(tax.CategoryOrder)
		}
		children[department].add(e.mapper.CategoryOf(r.Department), r.Amount)
	}

	out := make([]domain.DepartmentNode, 0, len(parents.order))
	for _, department := range parents.order {
		parentValue := parents.sums[department]
		if parentValue.IsZero() {
			continue
		}

		cats := children[department]
		node := domain.DepartmentNode{Name: department, Value: parentValue}
		for _, category := range cats.order {
			value := cats.sums[category]
			if value.IsZero() {
				continue
			}
			node.Children = append(node.Children, domain.DepartmentShare{
				Name:       category,
				Value:      value,
				Percentage: percentOf(value, parentValue),
			})
		}
		sortSharesDesc(node.Children)
		out = append(out, node)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

// MonthlyRevenue returns exactly twelve buckets, January to December of year,
// with months lacking records reported as zero. Records without a transaction
// date are ignored.
func MonthlyRevenue(records []domain.Record, year int) []domain.MonthlyRevenue {
	var sums [12]decimal.Decimal
	for _, r := range records {
		if r.TransactionDate == nil || r.TransactionDate.Year() != year {
			continue
		}
		idx := int(r.TransactionDate.Month()) - 1
		sums[idx] = sums[idx].Add(r.Amount)
	}

	out := make([]domain.MonthlyRevenue, 0, 12)
	for i := 0; i < 12; i++ {
		month := time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, domain.MonthlyRevenue{Month: monthLabel(month), Revenue: sums[i]})
	}
	return out
}

// MonthlyRevenueHistory returns one bucket per month that has records, across
// all years, in chronological order. Gaps are not filled.
func MonthlyRevenueHistory(records []domain.Record) []domain.MonthlyRevenue {
	sums := make(map[int]decimal.Decimal)
	for _, r := range records {
		if r.TransactionDate == nil {
			continue
		}
		key := r.TransactionDate.Year()*12 + int(r.TransactionDate.Month()) - 1
		sums[key] = sums[key].Add(r.Amount)
	}

	keys := make([]int, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]domain.MonthlyRevenue, 0, len(keys))
	for _, k := range keys {
		month := time.Date(k/12, time.Month(k%12+1), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, domain.MonthlyRevenue{Month: monthLabel(month), Revenue: sums[k]})
	}
	return out
}

// OrderTable lists records with open work first, then by order date with
// undated records last. limit <= 0 means DefaultOrderTableLimit.
func (e *Engine) OrderTable(records []domain.Record, limit int) []domain.OrderRow {
	if limit <= 0 {
		limit = DefaultOrderTableLimit
	}

	rows := make([]domain.OrderRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, domain.OrderRow{
			ID:           r.ID,
			Name:         r.Name,
			CustomerName: r.CustomerName,
			OrderDate:    r.OrderDate,
			DueDate:      r.DueDate,
			RawStatus:    r.Status,
			Status:       e.Classify(r),
			Branch:       e.mapper.BranchOf(r.CostCenter),
			Collection:   r.Collection,
			Department:   r.Department,
			Amount:       r.Amount,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		iDone := rows[i].Status == domain.StatusCompleted
		jDone := rows[j].Status == domain.StatusCompleted
		if iDone != jDone {
			return !iDone
		}
		return dateBefore(rows[i].OrderDate, rows[j].OrderDate)
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// orderedSums accumulates amounts per key while remembering key order.
type orderedSums struct {
	order []string
	sums  map[string]decimal.Decimal
}

func newOrderedSums(seed []string) *orderedSums {
	acc := &orderedSums{
		order: make([]string, 0, len(seed)),
		sums:  make(map[string]decimal.Decimal, len(seed)),
	}
	for _, key := range seed {
		if _, ok := acc.sums[key]; ok {
			continue
		}
		acc.order = append(acc.order, key)
		acc.sums[key] = decimal.Zero
	}
	return acc
}

func (a *orderedSums) add(key string, amount decimal.Decimal) {
	current, ok := a.sums[key]
	if !ok {
		a.order = append(a.order, key)
		current = decimal.Zero
	}
	a.sums[key] = current.Add(amount)
}

func sortSharesDesc(shares []domain.DepartmentShare) {
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Value.GreaterThan(shares[j].Value)
	})
}

func dateBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.Before(*b)
}

// countPercent rounds part/total to a whole percent, half away from zero.
func countPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func percentOf(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(total).Round(0).IntPart())
}
