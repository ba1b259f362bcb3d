package main

import (
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

type sampleOrder struct {
	id, customer, status, costCenter, department string
	month                                        time.Month
	day, leadDays                                int
	amount                                       int64
}

type sampleBatch struct {
	target repository.Target
	orders []sampleOrder
}

var sampleBatches = []sampleBatch{
	{target: repository.TargetSales, orders: []sampleOrder{
		{"SO-001", "PT Maju Jaya", "Completed", "JKT001", "UNIT COMPRESSOR - IDS", time.July, 10, 5, 25000000},
		{"SO-002", "CV Sejahtera", "To Deliver and Bill", "SBY002", "SPARE PART BLOWER - IDS", time.July, 12, 8, 18000000},
		{"SO-003", "UD Bersama", "To Deliver", "SMG003", "SERVICE VACUUM - IDS", time.June, 1, 4, 15000000},
		{"SO-004", "PT Sentosa", "To Bill", "MKS004", "ELECTRICAL PANEL - IDS", time.July, 5, 5, 22000000},
		{"SO-005", "CV Abadi", "To Deliver and Bill", "MDN005", "FABRIKASI INDUSTRIAL BLOWER - IDS", time.July, 18, 7, 20000000},
		{"SO-006", "PT Makmur", "Completed", "JBR006", "REWINDING - IDS", time.July, 20, 8, 30000000},
		{"SO-007", "UD Sukses", "To Deliver", "BDL007", "INDUSTRIAL REPAIR - IDS", time.July, 22, 8, 12000000},
		{"SO-008", "PT Angin Ribut", "Draft", "JKT008", "UNIT BLOWER - IDS", time.March, 3, 14, 9500000},
		{"SO-009", "PT Tekanan Tinggi", "Completed", "SBY009", "SPARE PART COMPRESSOR - IDS", time.February, 14, 3, 4300000},
	}},
	{target: repository.TargetAutomotive, orders: []sampleOrder{
		{"OTO-001", "Bengkel Jaya", "Completed", "JBR-OTO", "OTOMOTIF JEMBER - IDS", time.May, 2, 2, 3500000},
		{"OTO-002", "Bengkel Sentral", "To Deliver and Bill", "JBR-OTO", "OTOMOTIF LUMAJANG - IDS", time.June, 11, 5, 2750000},
		{"OTO-003", "CV Roda Mas", "To Bill", "JBR-OTO", "OTOMOTIF PROBOLINGGO - IDS", time.April, 20, 3, 4100000},
	}},
	{target: repository.TargetPG, orders: []sampleOrder{
		{"PG-001", "PT Pabrik Gula", "To Deliver", "SBY001", "UNIT VACUUM - IDS", time.August, 1, 10, 41000000},
		{"PG-002", "PT Gula Manis", "Completed", "SBY002", "SERVICE COMPRESSOR - IDS", time.January, 17, 6, 8800000},
	}},
}

func sampleDate(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// sampleSalesOrders returns the demo orders dated in year, keyed by target.
func sampleSalesOrders(year int) map[repository.Target][]domain.SalesOrder {
	out := make(map[repository.Target][]domain.SalesOrder, len(sampleBatches))
	for _, batch := range sampleBatches {
		for _, s := range batch.orders {
			orderDate := sampleDate(year, s.month, s.day)
			delivery := orderDate.AddDate(0, 0, s.leadDays)
			amount := decimal.NewFromInt(s.amount)

			out[batch.target] = append(out[batch.target], domain.SalesOrder{
				OrderID:         s.id,
				Name:            s.id,
				CustomerName:    s.customer,
				PODate:          orderDate,
				OrderDate:       orderDate,
				DeliveryDate:    &delivery,
				TransactionDate: orderDate,
				Status:          s.status,
				BaseTotal:       amount,
				TotalAmount:     amount.Mul(decimal.RequireFromString("1.11")).Round(2),
				CostCenter:      s.costCenter,
				Department:      s.department,
			})
		}
	}
	return out
}

// sampleInvoices bills a subset of the demo orders.
func sampleInvoices(year int) []domain.Invoice {
	type sample struct {
		id, orderID, customer, status, costCenter, collection string
		month                                                 time.Month
		day                                                   int
		total, paid                                           int64
	}
	samples := []sample{
		{"SI-001", "SO-001", "PT Maju Jaya", "Paid", "JKT001", domain.CollectionIndustry, time.July, 16, 25000000, 25000000},
		{"SI-002", "SO-004", "PT Sentosa", "Overdue", "MKS004", domain.CollectionIndustry, time.July, 12, 22000000, 0},
		{"SI-003", "SO-006", "PT Makmur", "Partly Paid", "JBR006", domain.CollectionIndustry, time.July, 29, 30000000, 12000000},
		{"SI-004", "OTO-001", "Bengkel Jaya", "Paid", "JBR-OTO", domain.CollectionAutomotive, time.May, 5, 3500000, 3500000},
		{"SI-005", "OTO-003", "CV Roda Mas", "Draft", "JBR-OTO", domain.CollectionAutomotive, time.April, 24, 4100000, 0},
	}

	invoices := make([]domain.Invoice, 0, len(samples))
	for _, s := range samples {
		invoiceDate := sampleDate(year, s.month, s.day)
		due := invoiceDate.AddDate(0, 0, 30)
		total := decimal.NewFromInt(s.total)
		paid := decimal.NewFromInt(s.paid)

		invoices = append(invoices, domain.Invoice{
			InvoiceID:         s.id,
			OrderID:           s.orderID,
			CustomerName:      s.customer,
			InvoiceDate:       invoiceDate,
			DueDate:           &due,
			Status:            s.status,
			TotalAmount:       total,
			PaidAmount:        paid,
			OutstandingAmount: total.Sub(paid),
			CostCenter:        s.costCenter,
			Collection:        s.collection,
		})
	}
	return invoices
}
