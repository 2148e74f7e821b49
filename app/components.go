package app

import (
	"relman/base"
	"relman/pkg/core/config"
	"relman/pkg/core/start"
	"relman/pkg/core/tracer"
	"relman/pkg/jenkins"
	"relman/pkg/notifier"
	"relman/pkg/storage"
)

// InitComponents 按配置初始化外部组件。
// 未配置的组件保持为 nil，调用方按未配置处理。
func InitComponents(cfg start.Config) error {
	log := base.Logger.WithEntryName("Components")

	base.Tracer = tracer.NewSimpleTracer()
	if cfg.Zipkin.Url != "" {
		zt, err := config.InitZipkin(cfg.Zipkin, cfg.AppName, cfg.Host)
		if err != nil {
			log.WithErr(err).Error("初始化 zipkin 失败")
			return err
		}
		base.Tracer = tracer.NewZipkinTracer(zt, cfg.AppName)
		log.WithField("url", cfg.Zipkin.Url).Info("已启用 zipkin 追踪")
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.WithErr(err).Error("初始化发布包存储失败")
		return err
	}
	base.Storage = store

	if cfg.Jenkins.Url != "" {
		base.Jenkins = jenkins.NewClient(cfg.Jenkins)
	} else {
		log.Warn("未配置 Jenkins，发布动作不可用")
	}

	if cfg.Mail.Enabled() {
		mailer, err := notifier.NewEmailNotifier(cfg.Mail)
		if err != nil {
			log.WithErr(err).Error("初始化邮件通知失败")
			return err
		}
		base.Mailer = mailer
	}
	return nil
}
