package analytics

import (
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	e := newTestEngine()
	records := sampleRecords()

	tests := []struct {
		name     string
		criteria domain.Criteria
		want     []string
	}{
		{name: "no criteria keeps everything", criteria: domain.Criteria{}, want: []string{"SO-001", "SO-002", "SO-003", "SO-004", "SO-005", "SO-006"}},
		{name: "status uses derived category", criteria: domain.Criteria{Status: string(domain.StatusOverdue)}, want: []string{"SO-003"}},
		{name: "default category", criteria: domain.Criteria{Status: string(domain.StatusToDeliverAndBill)}, want: []string{"SO-001", "SO-005"}},
		{name: "collection exact", criteria: domain.Criteria{Collection: domain.CollectionAutomotive}, want: []string{"SO-004"}},
		{name: "collection is case sensitive", criteria: domain.Criteria{Collection: "otomotive"}, want: []string{}},
		{name: "branch derived from cost center", criteria: domain.Criteria{Branch: "SURABAYA"}, want: []string{"SO-002"}},
		{name: "pseudo branch", criteria: domain.Criteria{Branch: "SURABAYA-PG"}, want: []string{"SO-005"}},
		{name: "passthrough branch", criteria: domain.Criteria{Branch: "XYZ"}, want: []string{"SO-006"}},
		{name: "month excludes undated", criteria: domain.Criteria{Month: "Mar 2025"}, want: []string{"SO-001", "SO-002"}},
		{name: "year excludes undated", criteria: domain.Criteria{Year: 2025}, want: []string{"SO-001", "SO-002", "SO-003", "SO-006"}},
		{name: "department mapped", criteria: domain.Criteria{Department: "BLOWER"}, want: []string{"SO-001", "SO-002"}},
		{name: "automotive department", criteria: domain.Criteria{Department: DepartmentAutomotive}, want: []string{"SO-004"}},
		{name: "category", criteria: domain.Criteria{Category: CategoryService}, want: []string{"SO-002", "SO-004"}},
		{name: "blank department is other", criteria: domain.Criteria{Category: CategoryOther}, want: []string{"SO-005"}},
		{name: "conjunction", criteria: domain.Criteria{Year: 2025, Department: "BLOWER", Status: string(domain.StatusCompleted)}, want: []string{"SO-002"}},
		{name: "no match", criteria: domain.Criteria{Year: 2023}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(e.Filter(records, tt.criteria)))
		})
	}
}

func TestFilterAutomotiveRecordNeverMatchesOtherDepartments(t *testing.T) {
	e := newTestEngine()
	r := domain.Record{ID: "OTO-1", Collection: domain.CollectionAutomotive, Department: "UNIT BLOWER - IDS"}

	assert.False(t, e.Matches(r, domain.Criteria{Department: "BLOWER"}))
	assert.True(t, e.Matches(r, domain.Criteria{Department: DepartmentAutomotive}))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	records := sampleRecords()
	before := ids(records)

	filtered := e.Filter(records, domain.Criteria{Branch: "JAKARTA"})
	require.Len(t, filtered, 1)
	filtered[0].ID = "changed"

	assert.Equal(t, before, ids(records))
}

func TestFilterIsOrderIndependent(t *testing.T) {
	e := newTestEngine()
	records := sampleRecords()

	a := domain.Criteria{Year: 2025}
	b := domain.Criteria{Collection: domain.CollectionIndustry}
	c := domain.Criteria{Status: string(domain.StatusToDeliver)}
	combined := domain.Criteria{Year: 2025, Collection: domain.CollectionIndustry, Status: string(domain.StatusToDeliver)}

	abc := e.Filter(e.Filter(e.Filter(records, a), b), c)
	cba := e.Filter(e.Filter(e.Filter(records, c), b), a)
	all := e.Filter(records, combined)

	assert.Equal(t, ids(all), ids(abc))
	assert.Equal(t, ids(all), ids(cba))
	assert.Equal(t, []string{"SO-006"}, ids(all))
}

func TestFilterUsesEngineReferenceDate(t *testing.T) {
	records := []domain.Record{{ID: "A", Status: "To Deliver", DueDate: date(2025, time.May, 15)}}
	criteria := domain.Criteria{Status: string(domain.StatusOverdue)}

	before := NewEngine(nil, time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC))
	after := NewEngine(nil, time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))

	assert.Empty(t, before.Filter(records, criteria))
	assert.Len(t, after.Filter(records, criteria), 1)
}
