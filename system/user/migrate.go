package user

import (
	"relman/pkg/core/logger"
	"relman/system/user/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate 自动迁移数据库表并写入角色
func AutoMigrate(db *gorm.DB, log *logger.Log) error {
	log.Info("开始迁移用户组件数据库表...")

	if err := db.AutoMigrate(&model.Role{}, &model.User{}, &model.UserProject{}); err != nil {
		log.WithErr(err).Error("迁移用户表失败")
		return err
	}

	roles := []model.Role{
		{ID: model.RoleAdmin, Name: "admin"},
		{ID: model.RoleDeveloper, Name: "developer"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		log.WithErr(err).Error("初始化角色失败")
		return err
	}

	log.Info("用户组件数据库表迁移完成")
	return nil
}
