package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

type settingPayload struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

func registerSettingsRoutes() {
	webserver.ApiGET("/admin/settings", listSettings)
	webserver.ApiPUT("/admin/settings", updateSetting)
}

func listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	if err := GetDB(c).Order("sort").Find(&rows).Error; err != nil {
		return failFromError(c, err)
	}
	return ok(c, rows)
}

func updateSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting", err.Error())
	}
	if strings.TrimSpace(payload.Type) == "" || strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Type and name are required", nil)
	}
	if err := GetApp(c).ConfigMgr().Set(payload.Type, payload.Name, payload.Value); err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"message": "Setting updated."})
}
