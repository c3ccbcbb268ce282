package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/gustavopprado/ecommerce-fgv/internal/dashboard"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/admin/dashboard", getDashboard)
}

// getDashboard returns the four aggregate groups for the filtered period.
// Cancelled orders are included; the UI derives its "valid" view itself.
func getDashboard(c echo.Context) error {
	filter, err := ordering.ParsePeriod(
		c.QueryParam("inicio"), c.QueryParam("fim"),
		c.QueryParam("ano"), c.QueryParam("mes"))
	if err != nil {
		return failFromError(c, err)
	}
	aggregates, err := dashboard.NewAggregator(GetDB(c)).Aggregates(filter)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, aggregates)
}
