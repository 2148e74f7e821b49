package vcs

import (
	"relman/pkg/core/logger"
	"relman/system/vcs/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate 自动迁移数据库表并写入状态字典
func AutoMigrate(db *gorm.DB, log *logger.Log) error {
	log.Info("开始迁移版本管理组件数据库表...")

	err := db.AutoMigrate(
		&model.Status{},
		&model.IssueCategory{},
		&model.Issue{},
		&model.BaselineIssue{},
		&model.Baseline{},
		&model.Package{},
	)
	if err != nil {
		log.WithErr(err).Error("迁移版本管理表失败")
		return err
	}

	statuses := append([]model.Status{}, model.DefaultStatuses...)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		log.WithErr(err).Error("初始化状态失败")
		return err
	}

	log.Info("版本管理组件数据库表迁移完成")
	return nil
}
