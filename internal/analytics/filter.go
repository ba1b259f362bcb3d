package analytics

import (
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// Engine filters and aggregates one batch of records against a fixed
// reference date. It holds no mutable state.
type Engine struct {
	mapper *Mapper
	today  time.Time
}

// NewEngine returns an engine that classifies relative to today's calendar date.
func NewEngine(mapper *Mapper, today time.Time) *Engine {
	if mapper == nil {
		mapper = NewMapper(DefaultTaxonomy())
	}
	return &Engine{mapper: mapper, today: clock.DateOf(today)}
}

// Today is the reference date used for overdue detection.
func (e *Engine) Today() time.Time {
	return e.today
}

// Classify returns the status category of a record.
func (e *Engine) Classify(r domain.Record) domain.StatusCategory {
	return Classify(r.Status, r.DueDate, e.today)
}

// Filter returns the records matching every active criterion, in input order.
// The input slice is left untouched.
func (e *Engine) Filter(records []domain.Record, criteria domain.Criteria) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	if criteria.IsEmpty() {
		return append(out, records...)
	}

	for _, r := range records {
		if e.Matches(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies all active criteria.
func (e *Engine) Matches(r domain.Record, criteria domain.Criteria) bool {
	if criteria.Status != "" && string(e.Classify(r)) != criteria.Status {
		return false
	}

	if criteria.Collection != "" && r.Collection != criteria.Collection {
		return false
	}

	if criteria.Branch != "" && e.mapper.BranchOf(r.CostCenter) != criteria.Branch {
		return false
	}

	if criteria.Month != "" {
		if r.TransactionDate == nil || monthLabel(*r.TransactionDate) != criteria.Month {
			return false
		}
	}

	if criteria.Year != 0 {
		if r.TransactionDate == nil || r.TransactionDate.Year() != criteria.Year {
			return false
		}
	}

	if criteria.Department != "" && !e.matchesDepartment(r, criteria.Department) {
		return false
	}

	if criteria.Category != "" && e.mapper.CategoryOf(r.Department) != criteria.Category {
		return false
	}

	return true
}

func (e *Engine) matchesDepartment(r domain.Record, want string) bool {
	tax := e.mapper.tax
	if r.Collection == tax.AutomotiveCollection {
		return want == tax.AutomotiveDepartment
	}

	department, ok := e.mapper.DepartmentOf(r.Department, r.Collection)
	return ok && department == want
}

func monthLabel(t time.Time) string {
	return t.Format(domain.MonthLayout)
}
