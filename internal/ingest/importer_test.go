package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryWriter struct {
	orders   map[repository.Target][]domain.SalesOrder
	invoices []domain.Invoice
	err      error
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{orders: map[repository.Target][]domain.SalesOrder{}}
}

func (w *memoryWriter) UpsertSalesOrders(_ context.Context, target repository.Target, orders []domain.SalesOrder) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.orders[target] = append(w.orders[target], orders...)
	return len(orders), nil
}

func (w *memoryWriter) UpsertInvoices(_ context.Context, invoices []domain.Invoice) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.invoices = append(w.invoices, invoices...)
	return len(invoices), nil
}

type countingPublisher struct {
	reasons []string
}

func (p *countingPublisher) PublishRefresh(_ context.Context, reason string) error {
	p.reasons = append(p.reasons, reason)
	return errors.New("broker down")
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeXLSX(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestTargetForFile(t *testing.T) {
	tests := []struct {
		path string
		want repository.Target
	}{
		{"exports/erp_so.csv", repository.TargetSales},
		{"exports/ERP_SO_OTO.xlsx", repository.TargetAutomotive},
		{"erp_so_pg.csv", repository.TargetPG},
		{"erp_si.csv", repository.TargetInvoices},
		{"2025 invoices.xlsx", repository.TargetInvoices},
		{"orders.csv", repository.TargetSales},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetForFile(tt.path))
		})
	}
}

func TestImportFilesRoutesByName(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "erp_so.csv", "order_id,base_total\nSO-1,100\nSO-2,bad\n"),
		writeFile(t, dir, "erp_si.csv", "invoice_id,total_amount,paid_amount\nSI-1,100,40\n"),
		writeXLSX(t, dir, "erp_so_oto.xlsx", [][]interface{}{
			{"order_id", "customer_name", "po_date", "base_total"},
			{"OTO-1", "PT Roda", "2025-02-03", "2500"},
		}),
	}

	writer := newMemoryWriter()
	publisher := &countingPublisher{}
	results, err := NewImporter(writer).WithPublisher(publisher).ImportFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, Result{File: paths[0], Target: repository.TargetSales, Parsed: 1, Skipped: 1, Written: 1}, results[0])
	assert.Equal(t, repository.TargetInvoices, results[1].Target)
	assert.Equal(t, repository.TargetAutomotive, results[2].Target)

	require.Len(t, writer.orders[repository.TargetAutomotive], 1)
	oto := writer.orders[repository.TargetAutomotive][0]
	assert.Equal(t, "PT Roda", oto.CustomerName)
	require.NotNil(t, oto.PODate)
	assert.Equal(t, 3, oto.PODate.Day())

	require.Len(t, writer.invoices, 1)
	assert.Equal(t, "60", writer.invoices[0].OutstandingAmount.String())

	assert.Equal(t, []string{"import 3 files"}, publisher.reasons, "publish errors are not fatal and happen once")
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()
	writer := newMemoryWriter()
	importer := NewImporter(writer)

	_, err := importer.ImportFile(context.Background(), filepath.Join(dir, "missing.csv"), repository.TargetSales)
	assert.Error(t, err)

	_, err = importer.ImportFile(context.Background(), writeFile(t, dir, "notes.txt", "x"), repository.TargetSales)
	assert.Error(t, err)

	_, err = importer.ImportFile(context.Background(), writeFile(t, dir, "erp_so.csv", "customer\nPT A\n"), repository.TargetSales)
	assert.ErrorContains(t, err, "missing required column")

	writer.err = errors.New("write failed")
	_, err = importer.ImportFile(context.Background(), writeFile(t, dir, "erp_si.csv", "invoice_id\nSI-1\n"), repository.TargetInvoices)
	assert.ErrorContains(t, err, "write failed")
}

func TestImportFileSkipsPublishWhenNothingWritten(t *testing.T) {
	dir := t.TempDir()
	publisher := &countingPublisher{}
	importer := NewImporter(newMemoryWriter()).WithPublisher(publisher)

	result, err := importer.ImportFile(context.Background(), writeFile(t, dir, "erp_so.csv", "order_id\n"), repository.TargetSales)
	require.NoError(t, err)
	assert.Zero(t, result.Written)
	assert.Empty(t, publisher.reasons)
}
