package portalapi

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func registerCatalogRoutes() {
	webserver.PubGET("/produtos", getCatalog)
}

// getCatalog serves the newest published catalog snapshot verbatim.
func getCatalog(c echo.Context) error {
	var snapshot domain.CatalogSnapshot
	err := GetDB(c).Order("created_at DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "No catalog published", nil)
	}
	if err != nil {
		return failFromError(c, err)
	}

	var products interface{}
	if err := json.Unmarshal([]byte(snapshot.Data), &products); err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL", "Stored catalog is not valid JSON", nil)
	}
	return ok(c, products)
}
