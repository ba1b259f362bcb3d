package analytics

import (
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

const (
	CategoryUnit      = "UNIT"
	CategorySparePart = "SPARE PART"
	CategoryFabrikasi = "FABRIKASI"
	CategoryService   = "SERVICE"
	CategoryOther     = "OTHER"

	DepartmentAutomotive = "OTOMOTIF"
)

// Taxonomy holds the static lookup tables that turn ERP labels into
// reporting dimensions. Keys are compared after trimming and upper-casing.
type Taxonomy struct {
	// ExactBranches match the whole cost center before the prefix rule applies.
	ExactBranches map[string]string
	// BranchCodes map a three letter cost center prefix to a branch.
	BranchCodes map[string]string
	Branches    []string

	Departments     map[string]string
	DepartmentOrder []string

	Categories      map[string]string
	CategoryOrder   []string
	DefaultCategory string

	Collections          []string
	AutomotiveCollection string
	AutomotiveDepartment string
}

// DefaultTaxonomy returns the tables used by the production dashboard.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		ExactBranches: map[string]string{
			"SBY-PG": "SURABAYA-PG",
		},
		BranchCodes: map[string]string{
			"JKT": "JAKARTA",
			"SBY": "SURABAYA",
			"SMG": "SEMARANG",
			"MKS": "MAKASSAR",
			"MDN": "MEDAN",
			"JBR": "JEMBER",
			"BDL": "LAMPUNG",
		},
		Branches: []string{
			"JAKARTA", "SURABAYA", "SEMARANG", "MAKASSAR", "MEDAN", "JEMBER", "LAMPUNG", "SURABAYA-PG",
		},
		Departments: map[string]string{
			"CONDITION BASE MONITORING - IDS":       "CONDITION BASE MONITORING",
			"ELECTRICAL PANEL - IDS":                "ELECTRICAL PANEL",
			"FABRIKASI INDUSTRIAL BLOWER - IDS":     "BLOWER",
			"FABRIKASI INDUSTRIAL COMPRESSOR - IDS": "COMPRESSOR",
			"FABRIKASI INDUSTRIAL VACUUM - IDS":     "VACUUM",
			"GENERAL FABRIKASI INDUSTRIAL - IDS":    "GENERAL INDUSTRI",
			"GENERAL INDUSTRI - IDS":                "GENERAL INDUSTRI",
			"INDUSTRIAL REPAIR - IDS":               "INDUSTRIAL REPAIR",
			"OTOMOTIF BANYUWANGI - IDS":             DepartmentAutomotive,
			"OTOMOTIF BONDOWOSO - IDS":              DepartmentAutomotive,
			"OTOMOTIF JEMBER - IDS":                 DepartmentAutomotive,
			"OTOMOTIF LUMAJANG - IDS":               DepartmentAutomotive,
			"OTOMOTIF PROBOLINGGO - IDS":            DepartmentAutomotive,
			"REWINDING - IDS":                       "REWINDING",
			"SERVICE BLOWER - IDS":                  "BLOWER",
			"SERVICE COMPRESSOR - IDS":              "COMPRESSOR",
			"SERVICE VACUUM - IDS":                  "VACUUM",
			"SPARE PART BLOWER - IDS":               "BLOWER",
			"SPARE PART COMPRESSOR - IDS":           "COMPRESSOR",
			"SPARE PART VACUUM - IDS":               "VACUUM",
			"UNIT BLOWER - IDS":                     "BLOWER",
			"UNIT COMPRESSOR - IDS":                 "COMPRESSOR",
			"UNIT VACUUM - IDS":                     "VACUUM",
		},
		DepartmentOrder: []string{
			"CONDITION BASE MONITORING",
			"ELECTRICAL PANEL",
			"BLOWER",
			"COMPRESSOR",
			"VACUUM",
			"GENERAL INDUSTRI",
			"INDUSTRIAL REPAIR",
			DepartmentAutomotive,
			"REWINDING",
		},
		Categories: map[string]string{
			"CONDITION BASE MONITORING - IDS":       CategoryOther,
			"ELECTRICAL PANEL - IDS":                CategoryFabrikasi,
			"FABRIKASI INDUSTRIAL BLOWER - IDS":     CategoryFabrikasi,
			"FABRIKASI INDUSTRIAL COMPRESSOR - IDS": CategoryFabrikasi,
			"FABRIKASI INDUSTRIAL VACUUM - IDS":     CategoryFabrikasi,
			"GENERAL FABRIKASI INDUSTRIAL - IDS":    CategoryFabrikasi,
			"GENERAL INDUSTRI - IDS":                CategoryOther,
			"INDUSTRIAL REPAIR - IDS":               CategoryService,
			"OTOMOTIF BANYUWANGI - IDS":             CategoryService,
			"OTOMOTIF BONDOWOSO - IDS":              CategoryService,
			"OTOMOTIF JEMBER - IDS":                 CategoryService,
			"OTOMOTIF LUMAJANG - IDS":               CategoryService,
			"OTOMOTIF PROBOLINGGO - IDS":            CategoryService,
			"REWINDING - IDS":                       CategoryService,
			"SERVICE BLOWER - IDS":                  CategoryService,
			"SERVICE COMPRESSOR - IDS":              CategoryService,
			"SERVICE VACUUM - IDS":                  CategoryService,
			"SPARE PART BLOWER - IDS":               CategorySparePart,
			"SPARE PART COMPRESSOR - IDS":           CategorySparePart,
			"SPARE PART VACUUM - IDS":               CategorySparePart,
			"UNIT BLOWER - IDS":                     CategoryUnit,
			"UNIT COMPRESSOR - IDS":                 CategoryUnit,
			"UNIT VACUUM - IDS":                     CategoryUnit,
		},
		CategoryOrder:        []string{CategoryUnit, CategorySparePart, CategoryFabrikasi, CategoryService, CategoryOther},
		DefaultCategory:      CategoryOther,
		Collections:          []string{domain.CollectionIndustry, domain.CollectionAutomotive},
		AutomotiveCollection: domain.CollectionAutomotive,
		AutomotiveDepartment: DepartmentAutomotive,
	}
}

// Mapper answers taxonomy lookups. It never mutates its tables, so one
// instance can be shared between goroutines.
type Mapper struct {
	tax Taxonomy
}

func NewMapper(tax Taxonomy) *Mapper {
	return &Mapper{tax: tax}
}

// BranchOf resolves a cost center code to a branch name. Unknown prefixes
// pass through as their own branch; an empty cost center yields "".
func (m *Mapper) BranchOf(costCenter string) string {
	code := normalizeLabel(costCenter)
	if branch, ok := m.tax.ExactBranches[code]; ok {
		return branch
	}

	prefix := code
	if runes := []rune(code); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	if branch, ok := m.tax.BranchCodes[prefix]; ok {
		return branch
	}
	return prefix
}

// DepartmentOf resolves the reporting department of a record. Every record of
// the automotive collection belongs to the automotive department regardless of
// its label. ok is false when the label is empty or unknown.
func (m *Mapper) DepartmentOf(rawDepartment, collection string) (string, bool) {
	if m.tax.AutomotiveCollection != "" && collection == m.tax.AutomotiveCollection {
		return m.tax.AutomotiveDepartment, true
	}

	label := normalizeLabel(rawDepartment)
	if label == "" {
		return "", false
	}
	department, ok := m.tax.Departments[label]
	return department, ok
}

// CategoryOf resolves a department label to its business category; empty and
// unknown labels fall into the default category.
func (m *Mapper) CategoryOf(rawDepartment string) string {
	if category, ok := m.tax.Categories[normalizeLabel(rawDepartment)]; ok {
		return category
	}
	return m.tax.DefaultCategory
}

func (m *Mapper) isKnownCollection(collection string) bool {
	for _, c := range m.tax.Collections {
		if c == collection {
			return true
		}
	}
	return false
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}
