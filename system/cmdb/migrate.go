package cmdb

import (
	"relman/pkg/core/logger"
	"relman/system/cmdb/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表
func AutoMigrate(db *gorm.DB, log *logger.Log) error {
	log.Info("开始迁移配置管理组件数据库表...")

	if err := db.AutoMigrate(&model.Project{}, &model.Subsystem{}, &model.Environment{}, &model.App{}); err != nil {
		log.WithErr(err).Error("迁移配置管理表失败")
		return err
	}

	log.Info("配置管理组件数据库表迁移完成")
	return nil
}
