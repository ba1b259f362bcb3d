// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/api/handlers"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/api/middleware"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	SalesService   *service.SalesService
	InvoiceService *service.InvoiceService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.SalesService != nil {
			salesHandler := handlers.NewSalesHandler(services.SalesService)
			salesGroup := apiGroup.Group("/sales")
			{
				salesGroup.GET("", salesHandler.ListSalesOrders)
				salesGroup.GET("/stats", salesHandler.GetStats)
				salesGroup.GET("/monthly-revenue", salesHandler.GetMonthlyRevenue)
				salesGroup.GET("/departments", salesHandler.GetDepartments)
				salesGroup.GET("/departments/tree", salesHandler.GetDepartmentTree)
				salesGroup.GET("/orders", salesHandler.GetOrders)
				salesGroup.GET("/dashboard", salesHandler.GetDashboard)
				salesGroup.POST("/refresh", salesHandler.Refresh)
			}
		}

		if services.InvoiceService != nil {
			invoiceHandler := handlers.NewInvoiceHandler(services.InvoiceService)
			invoiceGroup := apiGroup.Group("/invoices")
			{
				invoiceGroup.GET("", invoiceHandler.ListInvoices)
				invoiceGroup.GET("/stats", invoiceHandler.GetStats)
				invoiceGroup.GET("/dashboard", invoiceHandler.GetDashboard)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
