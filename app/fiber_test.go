package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticApp(t *testing.T) *fiber.App {
	f := fiber.New()
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("index"), 0o644))

	RegisterStaticFiles(f, staticDir, "/")

	// 静态兜底路由之后注册的接口
	f.Get("/api/baselines", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).SendString("api")
	})
	f.Get("/packages/download/:package_id", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).SendString("archive")
	})
	return f
}

func get(t *testing.T, f *fiber.App, url string) (int, string) {
	resp, err := f.Test(httptest.NewRequest(http.MethodGet, url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRegisterStaticFiles_DoesNotInterceptRoutes(t *testing.T) {
	f := newStaticApp(t)

	code, body := get(t, f, "/api/baselines")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "api", body)

	code, body = get(t, f, "/packages/download/3")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "archive", body)
}

func TestRegisterStaticFiles_SpaFallback(t *testing.T) {
	f := newStaticApp(t)

	code, body := get(t, f, "/packages/3/detail")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "index", body)

	code, _ = get(t, f, "/assets/missing.js")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRegisterStaticFiles_Disabled(t *testing.T) {
	f := fiber.New()
	RegisterStaticFiles(f, "", "/")

	code, _ := get(t, f, "/anything")
	assert.Equal(t, http.StatusNotFound, code)
}
