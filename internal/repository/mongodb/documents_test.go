package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decodeSales(t *testing.T, doc bson.M) salesDocument {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var out salesDocument
	require.NoError(t, bson.Unmarshal(raw, &out))
	return out
}

func TestSalesDocumentTagsCollectionAndOverridesCostCenter(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 2025-03-14 18:30 UTC is already 15 March in Jakarta.
	orderDate := time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC)
	d128, err := primitive.ParseDecimal128("1500000.25")
	require.NoError(t, err)

	doc := decodeSales(t, bson.M{
		"order_id":      "SO-PG-1",
		"status":        "To Bill",
		"order_date":    primitive.NewDateTimeFromTime(orderDate),
		"delivery_date": "2025-04-01",
		"base_total":    d128,
		"total_amount":  int32(42),
		"cost_center":   "SBY-IND",
		"department":    "PG",
	})

	order := doc.toDomain(collectionSpec{name: "erp_so_pg", tag: "Industry", costCenter: "SBY-PG"}, jakarta)

	assert.Equal(t, "SO-PG-1", order.OrderID)
	assert.Equal(t, "Industry", order.Collection)
	assert.Equal(t, "SBY-PG", order.CostCenter)
	require.NotNil(t, order.OrderDate)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), *order.OrderDate)
	require.NotNil(t, order.DeliveryDate)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), *order.DeliveryDate)
	assert.Nil(t, order.PODate)
	assert.Equal(t, "1500000.25", order.BaseTotal.String())
	assert.Equal(t, "42", order.TotalAmount.String())
}

func TestSalesDocumentKeepsCostCenterWithoutOverride(t *testing.T) {
	doc := decodeSales(t, bson.M{"order_id": "SO-1", "cost_center": "JKT-IND"})

	order := doc.toDomain(collectionSpec{name: "erp_so", tag: "Industry"}, time.UTC)

	assert.Equal(t, "JKT-IND", order.CostCenter)
	assert.True(t, order.BaseTotal.IsZero())
}

func TestRawAmount(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"double", 1250.5, "1250.5"},
		{"int64", int64(900), "900"},
		{"string", "Rp 1,000", "1000"},
		{"garbage string", "n/a", "0"},
		{"null", nil, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"v": tt.value})
			require.NoError(t, err)

			got := rawAmount(bson.Raw(raw).Lookup("v"))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestInvoiceDocumentDerivesOutstanding(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"invoice_id":   "INV-1",
		"order_id":     "SO-1",
		"status":       "Partly Paid",
		"invoice_date": "2025-02-10",
		"total_amount": 1000.0,
		"paid_amount":  400.0,
	})
	require.NoError(t, err)

	var doc invoiceDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	inv := doc.toDomain(time.UTC)

	assert.Equal(t, "600", inv.OutstandingAmount.String())
	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, 2025, inv.InvoiceDate.Year())
}

func TestDecimal128RoundTrip(t *testing.T) {
	doc := salesOrderDocument(decodeSales(t, bson.M{"order_id": "SO-9", "base_total": "77.5"}).toDomain(collectionSpec{tag: "Industry"}, time.UTC))

	d, ok := doc["base_total"].(primitive.Decimal128)
	require.True(t, ok)
	assert.Equal(t, "77.5", d.String())
}
