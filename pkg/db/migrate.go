package db

import (
	"relman/pkg/core/logger"
	"relman/system/cmdb"
	"relman/system/user"
	"relman/system/vcs"

	"gorm.io/gorm"
)

// AutoMigrate 自动执行所有数据库迁移
func AutoMigrate(db *gorm.DB) error {
	log := logger.GetLogger().WithEntryName("DatabaseMigration")

	log.Info("开始执行数据库迁移...")

	// 用户、角色、项目成员
	if err := user.AutoMigrate(db, log); err != nil {
		return err
	}

	// 项目、子系统、环境、应用
	if err := cmdb.AutoMigrate(db, log); err != nil {
		return err
	}

	// 状态、问题、基线、发布包
	if err := vcs.AutoMigrate(db, log); err != nil {
		return err
	}

	log.Info("所有数据库迁移执行完成")
	return nil
}
