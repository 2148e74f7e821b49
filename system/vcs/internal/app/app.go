package app

import (
	"relman/base"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/jenkins"
	"relman/pkg/notifier"
	"relman/pkg/storage"
	"relman/system/vcs/internal/dao"
	"relman/system/vcs/internal/service"
)

// App 版本管理组件应用层，负责合并之外的跨组件编排：Jenkins 任务、邮件和下载
type App struct {
	StatusService        *service.StatusService
	IssueCategoryService *service.IssueCategoryService
	IssueService         *service.IssueService
	BaselineService      *service.BaselineService
	PackageService       *service.PackageService

	users  service.Users
	cmdb   service.Cmdb
	jobs   jenkins.Trigger
	mailer notifier.Notifier
	store  storage.Store

	log *logger.Log
	err *errorc.ErrorBuilder
}

// NewApp 外部依赖取自 base，未配置的为 nil
func NewApp(users service.Users, cmdb service.Cmdb) *App {
	log := base.Logger.WithEntryName("VcsApp")

	baselineDao := dao.NewBaselineDao(base.DB)
	packageDao := dao.NewPackageDao(base.DB)

	statuses := service.NewStatusService(dao.NewStatusDao(base.DB))
	categories := service.NewIssueCategoryService(dao.NewIssueCategoryDao(base.DB))
	issues := service.NewIssueService(dao.NewIssueDao(base.DB))
	engine := service.NewMergeEngine(base.DB, baselineDao, packageDao, cmdb, log)

	return &App{
		StatusService:        statuses,
		IssueCategoryService: categories,
		IssueService:         issues,
		BaselineService: service.NewBaselineService(base.DB, baselineDao, dao.NewBaselineIssueDao(base.DB), packageDao,
			statuses, categories, issues, users, cmdb, log),
		PackageService: service.NewPackageService(base.DB, packageDao, baselineDao, engine, statuses, cmdb, log),

		users:  users,
		cmdb:   cmdb,
		jobs:   base.Jenkins,
		mailer: base.Mailer,
		store:  base.Storage,

		log: log,
		err: errorc.NewErrorBuilder("VcsApp"),
	}
}
