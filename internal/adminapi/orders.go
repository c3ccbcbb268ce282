package adminapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gustavopprado/ecommerce-fgv/internal/notify"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
	"github.com/gustavopprado/ecommerce-fgv/internal/report"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

type editOrderPayload struct {
	Itens       []ordering.LineItem `json:"itens"`
	Observacoes string              `json:"observacoes"`
}

type statusPayload struct {
	Status string `json:"status"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/pedidos", listOrders)
	webserver.ApiGET("/pedidos/:id", getOrderDetail)
	webserver.ApiGET("/pedidos/:id/xlsx", orderFormXlsx)
	webserver.ApiPUT("/pedidos/:id", editOrder)
	webserver.ApiPATCH("/pedidos/:id/status", updateOrderStatus)
}

// listOrders supports an explicit inicio/fim range or ano/mes, both applied
// to the order date.
func listOrders(c echo.Context) error {
	filter, err := ordering.ParsePeriod(
		c.QueryParam("inicio"), c.QueryParam("fim"),
		c.QueryParam("ano"), c.QueryParam("mes"))
	if err != nil {
		return failFromError(c, err)
	}
	rows, err := GetApp(c).Repo().ListOrders(filter)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, rows)
}

func getOrderDetail(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	detail, items, err := GetApp(c).Repo().GetOrderDetail(id)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"pedido": detail, "itens": items})
}

func editOrder(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload editOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order edit", err.Error())
	}

	newTotal, err := GetApp(c).Repo().ReplaceOrderItems(id, payload.Itens, payload.Observacoes)
	if err != nil {
		return failFromError(c, err)
	}

	// Dispatched only after the edit transaction has committed.
	GetApp(c).Bus().Publish(notify.TopicOrderEdited, id, payload.Observacoes)

	return ok(c, map[string]interface{}{
		"message":     "Order edited successfully.",
		"id":          strconv.FormatInt(id, 10),
		"valor_total": newTotal,
	})
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := GetApp(c).Repo().UpdateStatus(id, payload.Status); err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"message": "Status updated successfully."})
}

func orderFormXlsx(c echo.Context) error {
	id, err := parseOrderID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	buf, err := GetApp(c).ReportBuilder().OrderForm(id)
	if err != nil {
		return failFromError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=order_form_%d.xlsx`, id))
	return c.Blob(http.StatusOK, report.ContentType, buf.Bytes())
}

func parseOrderID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
