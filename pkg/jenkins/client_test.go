package jenkins

import (
	"context"
	"net"
	"testing"

	"relman/pkg/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type captured struct {
	path   string
	auth   string
	method string
	crumb  string
	args   map[string]string
}

// startServer crumb 为空时 crumbIssuer 返回 404，模拟未开启 CSRF 保护
func startServer(t *testing.T, status int, crumb string) (string, *captured) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	got := &captured{args: map[string]string{}}
	srv := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == "/crumbIssuer/api/json" {
			if crumb == "" {
				ctx.SetStatusCode(fasthttp.StatusNotFound)
				return
			}
			ctx.SetContentType("application/json")
			ctx.SetBodyString(`{"_class":"hudson.security.csrf.DefaultCrumbIssuer","crumb":"` + crumb + `","crumbRequestField":"Jenkins-Crumb"}`)
			return
		}
		got.path = string(ctx.Path())
		got.method = string(ctx.Method())
		got.auth = string(ctx.Request.Header.Peek("Authorization"))
		got.crumb = string(ctx.Request.Header.Peek("Jenkins-Crumb"))
		ctx.PostArgs().VisitAll(func(k, v []byte) {
			got.args[string(k)] = string(v)
		})
		ctx.Response.Header.Set("Location", "http://jenkins/queue/item/9/")
		ctx.SetStatusCode(status)
	}}
	go srv.Serve(ln)
	t.Cleanup(func() { _ = srv.Shutdown() })
	return "http://" + ln.Addr().String(), got
}

func TestClient_Build(t *testing.T) {
	addr, got := startServer(t, fasthttp.StatusCreated, "")
	c := NewClient(config.JenkinsConfig{Url: addr + "/", User: "admin", Token: "secret", MergeJob: "pkg-merge"})

	detail, err := c.Build(context.Background(), c.Job(JobMerge), map[string]string{"package": "demo_20240301_01", "sqlno": "A,B"})
	require.NoError(t, err)
	assert.Contains(t, detail, "pkg-merge")
	assert.Contains(t, detail, "queue/item/9")

	assert.Equal(t, "POST", got.method)
	assert.Equal(t, "/job/pkg-merge/buildWithParameters", got.path)
	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", got.auth)
	assert.Equal(t, "demo_20240301_01", got.args["package"])
	assert.Equal(t, "A,B", got.args["sqlno"])
	assert.Empty(t, got.crumb)
}

func TestClient_BuildWithCrumb(t *testing.T) {
	addr, got := startServer(t, fasthttp.StatusCreated, "c0ffee")
	c := NewClient(config.JenkinsConfig{Url: addr, User: "admin", Token: "secret", ReleaseJob: "pkg-release"})

	_, err := c.Build(context.Background(), c.Job(JobRelease), map[string]string{"package": "demo_20240301_01"})
	require.NoError(t, err)
	assert.Equal(t, "/job/pkg-release/buildWithParameters", got.path)
	assert.Equal(t, "c0ffee", got.crumb)
	assert.Equal(t, "Basic YWRtaW46c2VjcmV0", got.auth)
}

func TestClient_BuildFolderJob(t *testing.T) {
	addr, got := startServer(t, fasthttp.StatusCreated, "")
	c := NewClient(config.JenkinsConfig{Url: addr})

	_, err := c.Build(context.Background(), "demo/app-update", nil)
	require.NoError(t, err)
	assert.Equal(t, "/job/demo/job/app-update/buildWithParameters", got.path)
	assert.Empty(t, got.auth)
}

func TestClient_BuildFailure(t *testing.T) {
	addr, _ := startServer(t, fasthttp.StatusInternalServerError, "")
	c := NewClient(config.JenkinsConfig{Url: addr, DeployJob: "deploy"})

	_, err := c.Build(context.Background(), c.Job(JobDeploy), nil)
	assert.Error(t, err)
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(config.JenkinsConfig{})
	_, err := c.Build(context.Background(), "x", nil)
	assert.Error(t, err)

	c = NewClient(config.JenkinsConfig{Url: "http://127.0.0.1:1"})
	_, err = c.Build(context.Background(), c.Job(JobRelease), nil)
	assert.Error(t, err)
}
