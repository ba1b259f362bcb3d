package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dimension names one filterable attribute of a record.
type Dimension string

const (
	DimensionStatus     Dimension = "status"
	DimensionCollection Dimension = "collection"
	DimensionBranch     Dimension = "branch"
	DimensionMonth      Dimension = "month"
	DimensionYear       Dimension = "year"
	DimensionDepartment Dimension = "department"
	DimensionCategory   Dimension = "category"
)

// AllYears is the query value meaning "no year restriction".
const AllYears = "all"

// MonthLayout formats the month bucket label, e.g. "Mar 2025".
const MonthLayout = "Jan 2006"

// Criteria is the set of active dashboard selections. Empty strings and a zero
// year mean the dimension is not restricted.
type Criteria struct {
	Status     string `json:"status,omitempty"`
	Collection string `json:"collection,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Month      string `json:"month,omitempty"`
	Year       int    `json:"year,omitempty"`
	Department string `json:"department,omitempty"`
	Category   string `json:"category,omitempty"`
}

// IsEmpty reports whether no dimension is restricted.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Value returns the selection for a dimension as a string.
func (c Criteria) Value(dim Dimension) string {
	switch dim {
	case DimensionStatus:
		return c.Status
	case DimensionCollection:
		return c.Collection
	case DimensionBranch:
		return c.Branch
	case DimensionMonth:
		return c.Month
	case DimensionYear:
		if c.Year == 0 {
			return ""
		}
		return strconv.Itoa(c.Year)
	case DimensionDepartment:
		return c.Department
	case DimensionCategory:
		return c.Category
	}
	return ""
}

// With returns a copy with the dimension set to value. An empty value clears it.
func (c Criteria) With(dim Dimension, value string) (Criteria, error) {
	value = strings.TrimSpace(value)
	switch dim {
	case DimensionStatus:
		c.Status = value
	case DimensionCollection:
		c.Collection = value
	case DimensionBranch:
		c.Branch = value
	case DimensionMonth:
		c.Month = value
	case DimensionYear:
		year, err := ParseYear(value)
		if err != nil {
			return c, err
		}
		c.Year = year
	case DimensionDepartment:
		c.Department = value
	case DimensionCategory:
		c.Category = value
	default:
		return c, fmt.Errorf("unknown dimension %q", dim)
	}
	return c, nil
}

// Without returns a copy with the given dimensions cleared.
func (c Criteria) Without(dims ...Dimension) Criteria {
	for _, dim := range dims {
		c, _ = c.With(dim, "")
	}
	return c
}

// Toggle applies click-to-filter semantics: selecting the value that is
// already selected clears the dimension, anything else replaces it.
func (c Criteria) Toggle(dim Dimension, value string) (Criteria, error) {
	if current := c.Value(dim); current != "" && current == strings.TrimSpace(value) {
		return c.Without(dim), nil
	}
	return c.With(dim, value)
}

// ParseYear accepts "", "all" or a four digit year.
func ParseYear(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllYears) {
		return 0, nil
	}

	year, err := strconv.Atoi(value)
	if err != nil || year < 1 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", value)
	}
	return year, nil
}

// ParseCriteria builds a selection from named string parameters, e.g. URL
// query values. Labels are normalised to the casing the taxonomy uses and
// cost_center is accepted as an alias for category.
func ParseCriteria(get func(key string) string) (Criteria, error) {
	var criteria Criteria
	upper := func(key string) string {
		return strings.ToUpper(strings.TrimSpace(get(key)))
	}

	if status := strings.TrimSpace(get("status")); status != "" {
		category, ok := ParseStatusCategory(status)
		if !ok {
			return criteria, fmt.Errorf("unknown status %q", status)
		}
		criteria.Status = string(category)
	}

	criteria.Collection = CanonicalCollection(get("collection"))
	criteria.Branch = upper("branch")
	criteria.Department = upper("department")

	criteria.Category = upper("category")
	if criteria.Category == "" {
		criteria.Category = upper("cost_center")
	}

	if month := strings.TrimSpace(get("month")); month != "" {
		t, err := time.Parse(MonthLayout, month)
		if err != nil {
			return criteria, fmt.Errorf("invalid month %q, expected e.g. \"Mar 2025\"", month)
		}
		criteria.Month = t.Format(MonthLayout)
	}

	year, err := ParseYear(get("year"))
	if err != nil {
		return criteria, err
	}
	criteria.Year = year

	return criteria, nil
}
