package handlers

import (
	"net/http"
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	service *service.SalesService
}

func NewSalesHandler(service *service.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

// ListSalesOrders returns the merged, collection-tagged order batch.
func (h *SalesHandler) ListSalesOrders(c *gin.Context) {
	orders, err := h.service.ListSalesOrders(c.Request.Context())
	if err != nil {
		internalError(c, "failed to fetch sales orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "total": len(orders)})
}

func (h *SalesHandler) GetStats(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), criteria)
	if err != nil {
		internalError(c, "failed to fetch sales stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMonthlyRevenue serves the monthly chart. year=all without other
// selections returns every month that has sales.
func (h *SalesHandler) GetMonthlyRevenue(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	history := strings.EqualFold(strings.TrimSpace(c.Query("year")), domain.AllYears)

	series, err := h.service.GetMonthlyRevenue(c.Request.Context(), criteria, history)
	if err != nil {
		internalError(c, "failed to fetch monthly revenue", err)
		return
	}

	c.JSON(http.StatusOK, series)
}

func (h *SalesHandler) GetDepartments(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	departments, err := h.service.GetDepartments(c.Request.Context(), criteria)
	if err != nil {
		internalError(c, "failed to fetch departments", err)
		return
	}

	c.JSON(http.StatusOK, departments)
}

func (h *SalesHandler) GetDepartmentTree(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	tree, err := h.service.GetDepartmentTree(c.Request.Context(), criteria)
	if err != nil {
		internalError(c, "failed to fetch department tree", err)
		return
	}

	c.JSON(http.StatusOK, tree)
}

func (h *SalesHandler) GetOrders(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	limit := parsePositiveIntWithDefault(c.Query("limit"), 0)

	rows, err := h.service.GetOrders(c.Request.Context(), criteria, limit)
	if err != nil {
		internalError(c, "failed to fetch orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows, "total": len(rows)})
}

func (h *SalesHandler) GetDashboard(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), criteria)
	if err != nil {
		internalError(c, "failed to fetch sales dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *SalesHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context(), "api"); err != nil {
		internalError(c, "failed to refresh dashboard cache", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "refreshing"})
}
