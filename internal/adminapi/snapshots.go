package adminapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
	"github.com/gustavopprado/ecommerce-fgv/pkg/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot publishing replaces the import scripts of the legacy system: the
// catalog and the employee directory are maintained elsewhere and pushed
// here as read-only reference data.
func registerSnapshotRoutes() {
	webserver.ApiPOST("/admin/catalog", publishCatalog)
	webserver.ApiPOST("/admin/directory", publishDirectory)
}

// publishCatalog stores the request body as the newest catalog snapshot.
// The body must be a non-empty JSON array of products.
func publishCatalog(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read catalog body", nil)
	}
	var products []domain.CatalogProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Catalog must be a JSON array of products", err.Error())
	}
	if len(products) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Catalog may not be empty", nil)
	}

	snapshot := domain.CatalogSnapshot{
		ID:        common.UUIDint64(),
		Data:      string(body),
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&snapshot).Error; err != nil {
		return failFromError(c, err)
	}
	return created(c, map[string]interface{}{
		"id":       strconv.FormatInt(snapshot.ID, 10),
		"products": len(products),
	})
}

// publishDirectory bulk-upserts employee directory rows by badge.
func publishDirectory(c echo.Context) error {
	var entries []domain.DirectoryEmployee
	if err := c.Bind(&entries); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse directory entries", err.Error())
	}
	if len(entries) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Directory may not be empty", nil)
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			var existing domain.DirectoryEmployee
			err := tx.Where("badge = ?", entry.Badge).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				entry.ID = common.UUIDint64()
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&domain.DirectoryEmployee{}).Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"full_name":   entry.FullName,
					"cost_center": entry.CostCenter,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return failFromError(c, err)
	}
	return ok(c, map[string]interface{}{"imported": len(entries)})
}
