package handlers

import (
	"net/http"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service *service.InvoiceService
}

func NewInvoiceHandler(service *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		internalError(c, "failed to fetch invoices", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices, "total": len(invoices)})
}

func (h *InvoiceHandler) GetStats(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), criteria)
	if err != nil {
		internalError(c, "failed to fetch invoice stats", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *InvoiceHandler) GetDashboard(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), criteria)
	if err != nil {
		internalError(c, "failed to fetch invoice dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
