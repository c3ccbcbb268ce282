package portalapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/gustavopprado/ecommerce-fgv/internal/notify"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

// catalogItemPayload mirrors the catalog snapshot entry shape, which is what
// the storefront posts back when an order is placed.
type catalogItemPayload struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Cost        float64 `json:"cost"`
}

type createOrderPayload struct {
	Nome           string               `json:"nome"`
	Setor          string               `json:"setor"`
	Cracha         string               `json:"cracha"`
	AceitaDesconto bool                 `json:"aceitaDesconto"`
	NumeroParcelas interface{}          `json:"numeroParcelas"`
	Itens          []catalogItemPayload `json:"itens"`
}

func registerPortalOrderRoutes() {
	webserver.PubPOST("/pedidos", createOrder)
	webserver.PubGET("/pedidos/employee/:cracha", employeePrefill)
}

// parseInstallments tolerates parcelas arriving as string or number
// depending on the storefront form control; anything non-numeric or missing
// falls back to a single installment.
func parseInstallments(v interface{}) int {
	n := cast.ToInt(v)
	if n == 0 {
		n = 1
	}
	return n
}

// lineItems maps the catalog-shaped payload entries onto the repository's
// line-item shape (cost becomes the unit price).
func (p createOrderPayload) lineItems() []ordering.LineItem {
	items := make([]ordering.LineItem, 0, len(p.Itens))
	for _, it := range p.Itens {
		items = append(items, ordering.LineItem{
			Code:        it.Code,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.Cost,
		})
	}
	return items
}

func createOrder(c echo.Context) error {
	var payload createOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}

	id, total, err := GetApp(c).Repo().CreateOrder(ordering.CreateOrderInput{
		Name:         payload.Nome,
		Sector:       payload.Setor,
		Badge:        payload.Cracha,
		Consent:      payload.AceitaDesconto,
		Installments: parseInstallments(payload.NumeroParcelas),
		Items:        payload.lineItems(),
	})
	if err != nil {
		return failFromError(c, err)
	}

	GetApp(c).Bus().Publish(notify.TopicOrderCreated, id)

	return created(c, map[string]interface{}{
		"message":    "Order created successfully.",
		"pedidoId":   strconv.FormatInt(id, 10),
		"valorTotal": total,
	})
}

// employeePrefill looks the badge up in the published directory so the
// storefront can pre-fill the name and sector fields.
func employeePrefill(c echo.Context) error {
	badge, err := strconv.ParseInt(c.Param("cracha"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BADGE", "Invalid badge", nil)
	}
	entry, err := GetApp(c).Repo().LookupEmployee(badge)
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{
		"nome":   entry.FullName,
		"setor":  entry.CostCenter,
		"cracha": strconv.FormatInt(entry.Badge, 10),
	})
}
