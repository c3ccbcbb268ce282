package report

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
)

func newTestRepo(t *testing.T) *ordering.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return ordering.NewRepository(db)
}

func seedOrder(t *testing.T, repo *ordering.Repository) (int64, float64) {
	t.Helper()
	id, total, err := repo.CreateOrder(ordering.CreateOrderInput{
		Name:         "Maria Souza",
		Sector:       "Finance",
		Badge:        "12345",
		Consent:      true,
		Installments: 2,
		Items: []ordering.LineItem{
			{Code: "P1", Description: "Notebook stand", Quantity: 2, UnitPrice: 75},
			{Code: "P2", Description: "Mouse pad", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)
	return id, total
}

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return f
}

func TestOrderForm(t *testing.T) {
	repo := newTestRepo(t)
	id, total := seedOrder(t, repo)

	buf, err := NewBuilder(repo).OrderForm(id)
	require.NoError(t, err)

	f := openWorkbook(t, buf)
	assert.Equal(t, "Maria Souza", f.GetCellValue("Order Form", "C3"))
	assert.Equal(t, "12345", f.GetCellValue("Order Form", "A4"))
	assert.Equal(t, "2", f.GetCellValue("Order Form", "C4"))
	assert.Equal(t, "Finance", f.GetCellValue("Order Form", "D4"))

	// first item row
	assert.Equal(t, "P1", f.GetCellValue("Order Form", "B7"))
	assert.Equal(t, "Notebook stand", f.GetCellValue("Order Form", "C7"))

	got, err := strconv.ParseFloat(f.GetCellValue("Order Form", "D23"), 64)
	require.NoError(t, err)
	assert.InDelta(t, total, got, 0.001)
}

func TestOrderFormNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := NewBuilder(repo).OrderForm(999)
	assert.ErrorIs(t, err, ordering.ErrOrderNotFound)
}

func TestFullOrdersReport(t *testing.T) {
	repo := newTestRepo(t)
	id, _ := seedOrder(t, repo)
	seedOrder(t, repo)

	buf, err := NewBuilder(repo).FullOrdersReport()
	require.NoError(t, err)

	f := openWorkbook(t, buf)

	orderRows := f.GetRows(OrdersSheet)
	require.NotEmpty(t, orderRows)
	assert.Equal(t, OrdersHeader, orderRows[0][:len(OrdersHeader)])
	assert.Len(t, orderRows, 3) // header + two orders

	itemRows := f.GetRows(ItemsSheet)
	require.NotEmpty(t, itemRows)
	assert.Equal(t, ItemsHeader, itemRows[0][:len(ItemsHeader)])
	assert.Len(t, itemRows, 5) // header + four line items

	// ids are written as strings so spreadsheet software keeps full precision
	found := false
	for _, row := range orderRows[1:] {
		if row[0] == strconv.FormatInt(id, 10) {
			found = true
		}
	}
	assert.True(t, found)
}
