package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReadCSV(t *testing.T, body string) *Table {
	t.Helper()
	table, err := ReadCSV(strings.NewReader(body))
	require.NoError(t, err)
	return table
}

func TestParseSalesOrders(t *testing.T) {
	table := mustReadCSV(t, strings.Join([]string{
		"Order ID,Customer Name,PO Date,Delivery Date,Status,Base Total,Total Amount,Cost Center,Department",
		`SO-001,PT Maju Jaya,2025-03-15,20/03/2025,To Deliver and Bill,"1,500,000.50",1650000,JKT-UNIT,UNIT`,
		"SO-002,CV Sejahtera,not-a-date,,Completed,100,100,SBY,",
		",Missing Id,2025-03-01,,Draft,10,10,,",
		",,,,,,,,",
		"SO-003,UD Bersama,2025-04-01,,Completed,-5,0,SMG,",
		"SO-004,PT Sentosa,2025-04-02,,Completed,,,MKS,",
	}, "\n"))

	orders, stats, err := ParseSalesOrders(table)
	require.NoError(t, err)
	assert.Equal(t, ParseStats{Parsed: 2, Skipped: 3}, stats)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "SO-001", first.OrderID)
	assert.Equal(t, "PT Maju Jaya", first.CustomerName)
	require.NotNil(t, first.PODate)
	assert.True(t, first.PODate.Equal(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, first.DeliveryDate)
	assert.Equal(t, time.March, first.DeliveryDate.Month())
	assert.Equal(t, 20, first.DeliveryDate.Day())
	assert.Nil(t, first.OrderDate)
	assert.True(t, decimal.RequireFromString("1500000.50").Equal(first.BaseTotal))
	assert.True(t, decimal.NewFromInt(1650000).Equal(first.TotalAmount))
	assert.Equal(t, "JKT-UNIT", first.CostCenter)
	assert.Equal(t, "UNIT", first.Department)

	assert.Equal(t, "SO-004", orders[1].OrderID)
	assert.True(t, orders[1].BaseTotal.IsZero())
}

func TestParseSalesOrdersFallsBackToTotal(t *testing.T) {
	table := mustReadCSV(t, "order_id,grand_total\nSO-1,250\n")

	orders, _, err := ParseSalesOrders(table)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, decimal.NewFromInt(250).Equal(orders[0].BaseTotal))
}

func TestParseBlankAmountCellsFallBack(t *testing.T) {
	orders, _, err := ParseSalesOrders(mustReadCSV(t, "order_id,base_total,total_amount\nSO-1,,300\nSO-2,120,300\n"))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, decimal.NewFromInt(300).Equal(orders[0].BaseTotal))
	assert.True(t, decimal.NewFromInt(120).Equal(orders[1].BaseTotal))

	invoices, _, err := ParseInvoices(mustReadCSV(t, "invoice_id,total_amount,paid_amount,outstanding_amount\nSI-1,1000,250,\nSI-2,1000,250,50\n"))
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.True(t, decimal.NewFromInt(750).Equal(invoices[0].OutstandingAmount))
	assert.True(t, decimal.NewFromInt(50).Equal(invoices[1].OutstandingAmount))
}

func TestParseSalesOrdersMissingHeader(t *testing.T) {
	table := mustReadCSV(t, "customer,status\nPT A,Draft\n")

	_, _, err := ParseSalesOrders(table)
	assert.ErrorContains(t, err, "missing required column: order_id")
}

func TestParseInvoices(t *testing.T) {
	table := mustReadCSV(t, strings.Join([]string{
		"invoice_id,order_id,customer_name,posting_date,due_date,status,grand_total,paid_amount,collection",
		"SI-001,SO-001,PT Maju Jaya,2025-05-01,2025-05-31,Overdue,1000,400,otomotive",
		"SI-002,SO-002,CV Sejahtera,2025-05-02,bad,Paid,500,500,Industry",
	}, "\n"))

	invoices, stats, err := ParseInvoices(table)
	require.NoError(t, err)
	assert.Equal(t, ParseStats{Parsed: 1, Skipped: 1}, stats)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, "SI-001", inv.InvoiceID)
	assert.Equal(t, "Otomotive", inv.Collection)
	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, 1, inv.InvoiceDate.Day())
	assert.True(t, decimal.NewFromInt(600).Equal(inv.OutstandingAmount))
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Order ID":       "order_id",
		"\ufefforder_id": "order_id",
		" Delivery-Date": "delivery_date",
		"No.":            "no",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeHeader(in), in)
	}
}
