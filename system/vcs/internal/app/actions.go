package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"relman/pkg/jenkins"
	"relman/pkg/notifier"
	"relman/pkg/storage"
	"relman/system/vcs/internal/model"
	"relman/system/vcs/internal/service"
)

// MergePackage 触发合并任务，参数为包名和合并基线的编号
func (a *App) MergePackage(ctx context.Context, id int64) (*model.Package, string, error) {
	pkg, env, err := a.loadPackage(ctx, id)
	if err != nil {
		return nil, "", err
	}
	merged, err := a.BaselineService.FindOrdered(ctx, pkg.MergeBlineno)
	if err != nil {
		return nil, "", err
	}
	f := service.Concat(merged)

	params := map[string]string{
		"PACKAGE":    pkg.Name,
		"ENV":        env,
		"BASELINES":  pkg.MergeBlineno.String(),
		"SQLNO":      f.Sqlno.String(),
		"VERSIONNO":  f.Versionno.String(),
		"PCKNO":      f.Pckno.String(),
		"ROLLBACKNO": f.Rollbackno.String(),
	}
	return a.runPackageJob(ctx, pkg, jenkins.JobMerge, params, model.StatusPackageMerged)
}

// DeployPackage 触发部署任务
func (a *App) DeployPackage(ctx context.Context, id int64) (*model.Package, string, error) {
	pkg, env, err := a.loadPackage(ctx, id)
	if err != nil {
		return nil, "", err
	}
	params := map[string]string{"PACKAGE": pkg.Name, "ENV": env}
	return a.runPackageJob(ctx, pkg, jenkins.JobDeploy, params, model.StatusPackageDeployed)
}

// ReleasePackage 触发发布任务
func (a *App) ReleasePackage(ctx context.Context, id int64) (*model.Package, string, error) {
	pkg, env, err := a.loadPackage(ctx, id)
	if err != nil {
		return nil, "", err
	}
	params := map[string]string{"PACKAGE": pkg.Name, "ENV": env, "RLSDATE": pkg.Rlsdate}
	return a.runPackageJob(ctx, pkg, jenkins.JobRelease, params, model.StatusPackageReleased)
}

func (a *App) loadPackage(ctx context.Context, id int64) (*model.Package, string, error) {
	pkg, err := a.PackageService.FindById(ctx, id)
	if err != nil {
		return nil, "", err
	}
	env, err := a.cmdb.GetEnv(ctx, pkg.EnvID)
	if err != nil {
		return nil, "", err
	}
	return pkg, env.Name, nil
}

// runPackageJob 任务触发失败按请求错误返回，状态不变
func (a *App) runPackageJob(ctx context.Context, pkg *model.Package, kind jenkins.JobKind, params map[string]string, status int64) (*model.Package, string, error) {
	if a.jobs == nil {
		return nil, "", a.err.BadRequest("未配置Jenkins").WithTraceID(ctx)
	}
	detail, err := a.jobs.Build(ctx, a.jobs.Job(kind), params)
	if err != nil {
		return nil, "", a.err.New(fmt.Sprintf("发布包 %s 触发%s任务失败", pkg.Name, kind), err).ValidWithCtx().WithTraceID(ctx)
	}
	if err := a.PackageService.SetStatus(ctx, pkg, status); err != nil {
		return nil, "", err
	}

	a.log.WithTrace(ctx).WithField("packageId", pkg.ID).WithField("job", string(kind)).Info(detail)
	return pkg, detail, nil
}

// UpdateBaseline 触发应用的更新任务，成功后邮件通知开发者和配置的收件人
func (a *App) UpdateBaseline(ctx context.Context, id, userID int64) (*model.Baseline, string, error) {
	baseline, err := a.BaselineService.FindVisible(ctx, id, userID)
	if err != nil {
		return nil, "", err
	}
	app, err := a.cmdb.GetApp(ctx, baseline.AppID)
	if err != nil {
		return nil, "", err
	}
	if app.JenkinsJob == "" {
		return nil, "", a.err.BadRequest(fmt.Sprintf("应用 %d 未配置更新任务", app.ID)).WithTraceID(ctx)
	}
	if a.jobs == nil {
		return nil, "", a.err.BadRequest("未配置Jenkins").WithTraceID(ctx)
	}

	params := map[string]string{
		"BASELINE":   strconv.FormatInt(baseline.ID, 10),
		"APP":        strconv.FormatInt(baseline.AppID, 10),
		"UPDATENO":   strconv.Itoa(baseline.Updateno),
		"SQLNO":      baseline.Sqlno.String(),
		"VERSIONNO":  baseline.Versionno.String(),
		"PCKNO":      baseline.Pckno.String(),
		"ROLLBACKNO": baseline.Rollbackno.String(),
	}
	detail, err := a.jobs.Build(ctx, app.JenkinsJob, params)
	if err != nil {
		return nil, "", a.err.New(fmt.Sprintf("基线 %d 更新失败", baseline.ID), err).ValidWithCtx().WithTraceID(ctx)
	}

	a.notifyBaseline(ctx, baseline, detail)
	return baseline, detail, nil
}

// notifyBaseline 邮件失败只记日志
func (a *App) notifyBaseline(ctx context.Context, baseline *model.Baseline, detail string) {
	if a.mailer == nil {
		return
	}
	log := a.log.WithTrace(ctx).WithField("baselineId", baseline.ID)

	var recipients []string
	developer, err := a.users.GetUser(ctx, baseline.DeveloperID)
	if err != nil {
		log.WithErr(err).Warn("查询基线开发者失败")
	} else if developer.Email != "" {
		recipients = append(recipients, developer.Email)
	}

	n := &notifier.Notification{
		Title:      fmt.Sprintf("基线 %d 已更新", baseline.ID),
		Content:    detail,
		Recipients: recipients,
		Keys:       []string{"基线", "应用", "更新次数", "SQL", "版本", "程序包", "回滚"},
		Data: map[string]string{
			"基线":   strconv.FormatInt(baseline.ID, 10),
			"应用":   strconv.FormatInt(baseline.AppID, 10),
			"更新次数": strconv.Itoa(baseline.Updateno),
			"SQL":  baseline.Sqlno.String(),
			"版本":   baseline.Versionno.String(),
			"程序包":  baseline.Pckno.String(),
			"回滚":   baseline.Rollbackno.String(),
		},
		CreatedAt: time.Now(),
	}
	if err := a.mailer.Send(n); err != nil {
		log.WithErr(err).Error("发送基线邮件失败")
	}
}

// OpenPackageArchive 打开发布包的归档，调用方负责关闭
func (a *App) OpenPackageArchive(ctx context.Context, id int64) (*storage.Object, io.ReadCloser, error) {
	pkg, err := a.PackageService.FindById(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a.store == nil {
		return nil, nil, a.err.NotFound("未配置发布包存储").WithTraceID(ctx)
	}
	obj, err := a.store.Find(ctx, pkg.Name)
	if err != nil {
		return nil, nil, err
	}
	rc, err := a.store.Open(ctx, obj.Key)
	if err != nil {
		return nil, nil, err
	}
	return obj, rc, nil
}
