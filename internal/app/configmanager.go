package app

import (
	"errors"
	"time"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/gustavopprado/ecommerce-fgv/internal/domain"
	"github.com/gustavopprado/ecommerce-fgv/pkg/common"
)

// ConfigManager reads and writes operational settings stored in sys_config.
// Values are stored as strings and cast on read.
type ConfigManager struct {
	app *Application
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app}
}

func (cm *ConfigManager) GetString(category, name string) string {
	var item domain.SysConfig
	err := cm.app.gormDB.Where("type = ? and name = ?", category, name).First(&item).Error
	if err != nil {
		return ""
	}
	return item.Value
}

func (cm *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(cm.GetString(category, name))
}

func (cm *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(cm.GetString(category, name))
}

func (cm *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(cm.GetString(category, name))
}

// Set upserts one setting value.
func (cm *ConfigManager) Set(category, name, value string) error {
	var item domain.SysConfig
	err := cm.app.gormDB.Where("type = ? and name = ?", category, name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cm.app.gormDB.Create(&domain.SysConfig{
			ID:    common.UUIDint64(),
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	}
	if err != nil {
		return err
	}
	return cm.app.gormDB.Model(&domain.SysConfig{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
}
