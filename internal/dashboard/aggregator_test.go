package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := ordering.NewRepository(db)

	id1, _, err := repo.CreateOrder(ordering.CreateOrderInput{
		Name: "Maria Souza", Sector: "Finance", Badge: "12345", Installments: 1,
		Items: []ordering.LineItem{
			{Code: "P1", Description: "Notebook stand", Quantity: 2, UnitPrice: 75},
		},
	})
	require.NoError(t, err)
	id2, _, err := repo.CreateOrder(ordering.CreateOrderInput{
		Name: "Joao Pereira", Sector: "IT", Badge: "67890", Installments: 1,
		Items: []ordering.LineItem{
			{Code: "P1", Description: "Notebook stand", Quantity: 1, UnitPrice: 75},
			{Code: "P2", Description: "Mouse pad", Quantity: 5, UnitPrice: 10},
		},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Order{}).Where("id = ?", id1).Updates(map[string]interface{}{
		"order_date": time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC),
		"status":     domain.OrderStatusCompleted,
	}).Error)
	require.NoError(t, db.Model(&domain.Order{}).Where("id = ?", id2).Updates(map[string]interface{}{
		"order_date": time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC),
	}).Error)
}

func TestAggregates(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	out, err := NewAggregator(db).Aggregates(ordering.PeriodFilter{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, out.Totals.Orders)
	assert.EqualValues(t, 2, out.Totals.Employees)
	assert.InDelta(t, 275.0, out.Totals.Value, 0.001)

	byStatus := map[string]int64{}
	for _, s := range out.ByStatus {
		byStatus[s.Status] = s.Total
	}
	assert.EqualValues(t, 1, byStatus[domain.OrderStatusPending])
	assert.EqualValues(t, 1, byStatus[domain.OrderStatusCompleted])

	require.Len(t, out.ByMonth, 2)
	assert.Equal(t, "2025-03", out.ByMonth[0].Month)
	assert.EqualValues(t, 1, out.ByMonth[0].Orders)
	assert.Equal(t, "2025-04", out.ByMonth[1].Month)

	require.NotEmpty(t, out.TopProducts)
	// P2 leads by quantity (5 vs 3)
	assert.Equal(t, "P2", out.TopProducts[0].ProductCode)
	assert.InDelta(t, 5.0, out.TopProducts[0].Quantity, 0.001)
	assert.InDelta(t, 50.0, out.TopProducts[0].Value, 0.001)
}

func TestAggregatesFiltered(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)

	f, err := ordering.ParsePeriod("", "", "2025", "3")
	require.NoError(t, err)
	out, err := NewAggregator(db).Aggregates(f)
	require.NoError(t, err)

	assert.EqualValues(t, 1, out.Totals.Orders)
	assert.InDelta(t, 150.0, out.Totals.Value, 0.001)
	require.Len(t, out.ByMonth, 1)
	assert.Equal(t, "2025-03", out.ByMonth[0].Month)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "P1", out.TopProducts[0].ProductCode)
}

func TestAggregatesEmpty(t *testing.T) {
	out, err := NewAggregator(newTestDB(t)).Aggregates(ordering.PeriodFilter{})
	require.NoError(t, err)
	assert.Zero(t, out.Totals.Orders)
	assert.Empty(t, out.ByStatus)
	assert.Empty(t, out.ByMonth)
	assert.Empty(t, out.TopProducts)
}
