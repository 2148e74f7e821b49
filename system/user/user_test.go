package user

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"relman/base"
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
	require.NoError(t, m.EnsureBootstrapAdmin(context.Background()))

	app := fiber.New(fiber.Config{ErrorHandler: fiber_handle.ErrHandler})
	RegisterRoutes(m, app.Group("/api"))
	return m, app
}

func call(t *testing.T, app *fiber.App, method, url, token, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	code, out := call(t, app, "POST", "/api/auth/token", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, 200, code, out)
	return out["data"].(map[string]interface{})["accessToken"].(string)
}

func TestLoginAndMe(t *testing.T) {
	_, app := setup(t)

	code, _ := call(t, app, "POST", "/api/auth/token", "", `{"username":"admin","password":"bad"}`)
	assert.Equal(t, 401, code)
	code, _ = call(t, app, "POST", "/api/auth/token", "", `{"username":""}`)
	assert.Equal(t, 400, code)

	token := login(t, app, "admin", "admin")
	code, out := call(t, app, "GET", "/api/users/me", token, "")
	require.Equal(t, 200, code)
	user := out["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["username"])
	assert.NotContains(t, user, "PasswordHash")

	code, _ = call(t, app, "GET", "/api/users/me", "", "")
	assert.Equal(t, 401, code)
	code, _ = call(t, app, "GET", "/api/users/me", "garbage", "")
	assert.Equal(t, 401, code)
}

func TestAdminManagesUsers(t *testing.T) {
	m, app := setup(t)
	admin := login(t, app, "admin", "admin")

	code, out := call(t, app, "POST", "/api/users", admin, `{"username":"dev","password":"secret1","role_id":2,"project_ids":[1,2]}`)
	require.Equal(t, 200, code, out)
	devID := int64(out["data"].(map[string]interface{})["id"].(float64))

	dev := login(t, app, "dev", "secret1")
	code, _ = call(t, app, "POST", "/api/users", dev, `{"username":"x","password":"secret1","role_id":2}`)
	assert.Equal(t, 403, code)

	ids, all, err := m.Client.VisibleProjectIDs(context.Background(), devID)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, []int64{1, 2}, ids)

	_, all, err = m.Client.VisibleProjectIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, all)

	code, _ = call(t, app, "PUT", "/api/users/2/projects", admin, `{"project_ids":[4]}`)
	assert.Equal(t, 200, code)
	u, err := m.Client.GetUser(context.Background(), devID)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, u.ProjectIDs)
	assert.False(t, u.IsAdmin)

	code, out = call(t, app, "GET", "/api/roles", dev, "")
	assert.Equal(t, 200, code)
	assert.Equal(t, float64(2), out["data"].(map[string]interface{})["total"])
}
