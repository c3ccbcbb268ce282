package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gustavopprado/ecommerce-fgv/internal/notify"
	"github.com/gustavopprado/ecommerce-fgv/internal/report"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

func registerReportRoutes() {
	webserver.ApiGET("/admin/relatorios/pedidos-xlsx", ordersReportXlsx)
	webserver.ApiPOST("/admin/relatorios/pedidos-email", emailOrdersReport)
}

func ordersReportXlsx(c echo.Context) error {
	buf, err := GetApp(c).ReportBuilder().FullOrdersReport()
	if err != nil {
		return failFromError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename=orders_report.xlsx`)
	return c.Blob(http.StatusOK, report.ContentType, buf.Bytes())
}

// emailOrdersReport sends the full report synchronously: the admin asked for
// it and expects to know whether it went out.
func emailOrdersReport(c echo.Context) error {
	err := GetApp(c).Dispatcher().SendFullReport()
	if errors.Is(err, notify.ErrNoRecipient) {
		return fail(c, http.StatusBadRequest, "NO_RECIPIENT",
			"Report recipient not configured (report.recipient or smtp.username)", nil)
	}
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"message": "Report sent by email successfully."})
}
