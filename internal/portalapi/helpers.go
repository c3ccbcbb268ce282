package portalapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/app"
	"github.com/gustavopprado/ecommerce-fgv/internal/ordering"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

// InitRouter registers the public, unauthenticated endpoints used by the
// employee storefront.
func InitRouter() {
	registerPortalOrderRoutes()
	registerCatalogRoutes()
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

func GetApp(c echo.Context) *app.Application {
	return webserver.GetApp(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	resp := map[string]interface{}{"code": code, "error": message}
	if detail != nil {
		resp["detail"] = detail
	}
	return c.JSON(status, resp)
}

// failFromError maps repository errors onto the HTTP error taxonomy.
func failFromError(c echo.Context, err error) error {
	switch {
	case ordering.IsValidation(err):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, ordering.ErrEmployeeNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
	default:
		zap.L().Error("portal api internal error",
			zap.String("path", c.Path()), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
