package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/api/v1/sales/dashboard?"+rawQuery, nil)
	require.NoError(t, err)
	c.Request = req
	return c
}

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.Criteria
	}{
		{"empty", "", domain.Criteria{}},
		{"status is case insensitive", "status=to+bill", domain.Criteria{Status: string(domain.StatusToBill)}},
		{"collection canonicalised", "collection=otomotive", domain.Criteria{Collection: domain.CollectionAutomotive}},
		{"labels upper-cased", "branch=jakarta&department=blower", domain.Criteria{Branch: "JAKARTA", Department: "BLOWER"}},
		{"cost_center alias", "cost_center=spare+part", domain.Criteria{Category: "SPARE PART"}},
		{"category wins over alias", "category=unit&cost_center=service", domain.Criteria{Category: "UNIT"}},
		{"month reformatted", "month=mar+2025", domain.Criteria{Month: "Mar 2025"}},
		{"year", "year=2024", domain.Criteria{Year: 2024}},
		{"all years", "year=all", domain.Criteria{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCriteria(contextWithQuery(t, tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCriteriaRejectsBadInput(t *testing.T) {
	for _, query := range []string{"status=shipped", "year=twenty", "month=2025-03"} {
		t.Run(query, func(t *testing.T) {
			_, err := parseCriteria(contextWithQuery(t, query))
			assert.Error(t, err)
		})
	}
}

func TestParsePositiveIntWithDefault(t *testing.T) {
	assert.Equal(t, 50, parsePositiveIntWithDefault("", 50))
	assert.Equal(t, 10, parsePositiveIntWithDefault("10", 50))
	assert.Equal(t, 50, parsePositiveIntWithDefault("-3", 50))
	assert.Equal(t, 50, parsePositiveIntWithDefault("abc", 50))
}
