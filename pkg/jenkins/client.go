// Package jenkins 触发 Jenkins 参数化构建
package jenkins

import (
	"context"
	"net/url"
	"strings"
	"time"

	"relman/pkg/core/config"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/util"
)

type JobKind string

const (
	JobMerge   JobKind = "merge"
	JobDeploy  JobKind = "deploy"
	JobRelease JobKind = "release"
)

// Trigger 按任务名触发构建
type Trigger interface {
	Job(kind JobKind) string
	Build(ctx context.Context, job string, params map[string]string) (string, error)
}

// Client Jenkins 客户端
type Client struct {
	config config.JenkinsConfig
	log    *logger.Log
	err    *errorc.ErrorBuilder
}

func NewClient(cfg config.JenkinsConfig) *Client {
	return &Client{
		config: cfg,
		log:    logger.GetLogger().WithEntryName("JenkinsClient"),
		err:    errorc.NewErrorBuilder("JenkinsClient"),
	}
}

// Job 返回配置中对应类型的任务名
func (c *Client) Job(kind JobKind) string {
	switch kind {
	case JobMerge:
		return c.config.MergeJob
	case JobDeploy:
		return c.config.DeployJob
	case JobRelease:
		return c.config.ReleaseJob
	}
	return ""
}

func (c *Client) buildUrl(job string) string {
	base := strings.TrimSuffix(c.config.Url, "/")
	parts := strings.Split(job, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return base + "/job/" + strings.Join(parts, "/job/") + "/buildWithParameters"
}

// crumb 开启 CSRF 保护的 Jenkins 需要在请求头带上 crumb，未开启时接口返回 404
func (c *Client) crumb(ctx context.Context, headers []util.Header) (util.Header, bool) {
	uri := strings.TrimSuffix(c.config.Url, "/") + "/crumbIssuer/api/json"
	result, err := util.HttpGet(uri, nil, headers...)
	if err != nil {
		c.log.WithTrace(ctx).WithErr(err).Debug("未获取到Jenkins crumb")
		return util.Header{}, false
	}
	field := result.Get("crumbRequestField").String()
	value := result.Get("crumb").String()
	if field == "" || value == "" {
		return util.Header{}, false
	}
	return util.Header{Key: field, Value: value}, true
}

// Build 以参数触发任务，返回队列地址作为说明
func (c *Client) Build(ctx context.Context, job string, params map[string]string) (string, error) {
	if c.config.Url == "" {
		return "", c.err.New("未配置Jenkins地址", nil).WithCode(errorc.ErrorCodeUnavailable).WithTraceID(ctx)
	}
	if job == "" {
		return "", c.err.BadRequest("未配置Jenkins任务").WithTraceID(ctx)
	}

	var headers []util.Header
	if c.config.User != "" {
		headers = append(headers, util.BasicAuth(c.config.User, c.config.Token))
	}
	if crumb, ok := c.crumb(ctx, headers); ok {
		headers = append(headers, crumb)
	}
	h := util.NewHttp(c.buildUrl(job), params, headers...)
	if c.config.Timeout > 0 {
		h.Timeout = time.Duration(c.config.Timeout) * time.Second
	}

	log := c.log.WithTrace(ctx).WithField("job", job)
	if err := h.PostForm(); err != nil {
		return "", c.err.New("触发Jenkins任务失败: "+job, err).Third().WithTraceID(ctx).ToLog(log.Entry)
	}
	queue := h.Header("Location")
	h.Close()

	log.WithField("queue", queue).Info("Jenkins任务已触发")
	if queue == "" {
		return "Jenkins任务 " + job + " 已触发", nil
	}
	return "Jenkins任务 " + job + " 已触发，队列: " + queue, nil
}
