package cmdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"relman/base"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/fiber_handle"
	"relman/pkg/core/logger"
	"relman/pkg/core/security"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setup(t *testing.T) (*Module, *fiber.App) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	base.DB = db
	base.Logger = logger.GetLogger()
	base.UserAuth = security.NewUserAuth([]byte("test-secret"), time.Hour)
	require.NoError(t, AutoMigrate(db, base.Logger))

	m := NewModule()
	app := fiber.New(fiber.Config{ErrorHandler: fiber_handle.ErrHandler})
	RegisterRoutes(m, app.Group("/api"))
	return m, app
}

func token(t *testing.T, id, role int64) string {
	tk, _, err := base.UserAuth.CreateToken(&security.UserClaims{ID: id, Username: "u", RoleID: role})
	require.NoError(t, err)
	return tk
}

func call(t *testing.T, app *fiber.App, method, url, tk, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tk)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestCmdbResources(t *testing.T) {
	m, app := setup(t)
	admin := token(t, 1, security.RoleAdmin)
	dev := token(t, 2, 2)
	ctx := context.Background()

	code, _ := call(t, app, "POST", "/api/projects", dev, `{"name":"demo"}`)
	assert.Equal(t, 403, code)

	code, _ = call(t, app, "POST", "/api/projects", admin, `{"name":"demo"}`)
	require.Equal(t, 200, code)
	code, _ = call(t, app, "POST", "/api/projects", admin, `{"name":"other"}`)
	require.Equal(t, 200, code)
	code, _ = call(t, app, "POST", "/api/subsystems", admin, `{"name":"core","project_id":1}`)
	require.Equal(t, 200, code)
	code, _ = call(t, app, "POST", "/api/subsystems", admin, `{"name":"ghost","project_id":42}`)
	assert.Equal(t, 404, code)
	code, _ = call(t, app, "POST", "/api/envs", admin, `{"name":"SIT"}`)
	require.Equal(t, 200, code)
	code, _ = call(t, app, "POST", "/api/envs", admin, `{"name":"PROD"}`)
	require.Equal(t, 200, code)

	code, _ = call(t, app, "POST", "/api/apps", admin, `{"project_id":1,"subsystem_id":1,"env_id":1,"jenkins_job":"core-sit"}`)
	require.Equal(t, 200, code)
	code, _ = call(t, app, "POST", "/api/apps", admin, `{"project_id":1,"subsystem_id":1,"env_id":2}`)
	require.Equal(t, 200, code)
	code, _ = call(t, app, "POST", "/api/apps", admin, `{"project_id":1,"subsystem_id":1,"env_id":1}`)
	assert.Equal(t, 400, code)
	code, _ = call(t, app, "POST", "/api/apps", admin, `{"project_id":2,"subsystem_id":1,"env_id":1}`)
	assert.Equal(t, 400, code)
	code, _ = call(t, app, "POST", "/api/apps", admin, `{"project_id":1,"subsystem_id":1}`)
	assert.Equal(t, 400, code)

	code, out := call(t, app, "GET", "/api/apps?filter[env_id]=2", dev, "")
	require.Equal(t, 200, code)
	assert.Equal(t, float64(1), out["data"].(map[string]interface{})["total"])

	found, err := m.Client.FindApp(ctx, 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.ID)
	_, err = m.Client.FindApp(ctx, 1, 1, 9)
	assert.True(t, errorc.IsNotFound(err))

	a, err := m.Client.GetApp(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "core-sit", a.JenkinsJob)

	ids, err := m.Client.AppIDsByProjects(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	ids, err = m.Client.AppIDsByProjects(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	p, err := m.Client.GetProject(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "demo", p.Name)
	e, err := m.Client.GetEnv(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "PROD", e.Name)
}
