// Package dashboard computes the admin dashboard aggregates from order and
// line-item records. It makes no status exclusions; the admin UI derives its
// "valid orders" view client-side.
package dashboard

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
)

type Totals struct {
	Orders    int64   `json:"total_pedidos"`
	Value     float64 `json:"total_valor"`
	Employees int64   `json:"total_colaboradores"`
}

type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

type MonthBucket struct {
	Month  string  `json:"mes"`
	Orders int64   `json:"total_pedidos"`
	Value  float64 `json:"total_valor"`
}

type ProductRank struct {
	ProductCode string  `json:"codigo_produto"`
	Description string  `json:"descricao_produto"`
	Quantity    float64 `json:"total_quantidade"`
	Value       float64 `json:"total_valor"`
}

type Aggregates struct {
	Totals      Totals        `json:"totais"`
	ByStatus    []StatusCount `json:"pedidosPorStatus"`
	ByMonth     []MonthBucket `json:"pedidosPorMes"`
	TopProducts []ProductRank `json:"topProdutos"`
}

type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregates computes the four dashboard groups for the filtered period.
func (a *Aggregator) Aggregates(f ordering.PeriodFilter) (*Aggregates, error) {
	out := &Aggregates{
		ByStatus:    make([]StatusCount, 0),
		ByMonth:     make([]MonthBucket, 0),
		TopProducts: make([]ProductRank, 0),
	}

	err := a.db.Table("pedidos").
		Select("COUNT(*) AS orders, COALESCE(SUM(total), 0) AS value, COUNT(DISTINCT employee_id) AS employees").
		Scopes(f.Scope("order_date")).
		Scan(&out.Totals).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "dashboard totals")
	}

	err = a.db.Table("pedidos").
		Select("status, COUNT(*) AS total").
		Scopes(f.Scope("order_date")).
		Group("status").
		Scan(&out.ByStatus).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "dashboard status breakdown")
	}

	monthExpr := a.monthExpr("order_date")
	err = a.db.Table("pedidos").
		Select(monthExpr + " AS month, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS value").
		Scopes(f.Scope("order_date")).
		Group(monthExpr).
		Order("month").
		Scan(&out.ByMonth).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "dashboard monthly breakdown")
	}

	err = a.db.Table("itens_pedido").
		Select("itens_pedido.product_code, itens_pedido.description, " +
			"SUM(itens_pedido.quantity) AS quantity, " +
			"SUM(itens_pedido.quantity * itens_pedido.unit_price) AS value").
		Joins("INNER JOIN pedidos ON pedidos.id = itens_pedido.order_id").
		Scopes(f.Scope("pedidos.order_date")).
		Group("itens_pedido.product_code, itens_pedido.description").
		Order("quantity DESC").
		Limit(10).
		Scan(&out.TopProducts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "dashboard top products")
	}

	return out, nil
}

// monthExpr returns the YYYY-MM bucketing expression for the active dialect.
func (a *Aggregator) monthExpr(column string) string {
	if strings.EqualFold(a.db.Name(), "postgres") {
		return "to_char(" + column + ", 'YYYY-MM')"
	}
	return "strftime('%Y-%m', " + column + ")"
}
