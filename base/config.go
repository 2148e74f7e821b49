package base

import (
	"relman/pkg/core/logger"
	"relman/pkg/core/security"
	"relman/pkg/core/start"
	"relman/pkg/core/tracer"
	"relman/pkg/jenkins"
	"relman/pkg/notifier"
	"relman/pkg/storage"

	"gorm.io/gorm"
)

var (
	Configures *start.Configures
	Logger     *logger.Log
	ENV        string
	UserAuth   *security.UserAuth
	DB         *gorm.DB
	Tracer     tracer.Tracer
	Storage    storage.Store
	Jenkins    jenkins.Trigger
	// Mailer 未配置邮件时为 nil
	Mailer notifier.Notifier
)
