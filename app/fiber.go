package app

import (
	"strings"
	"time"

	"relman/base"
	"relman/pkg/core/start"

	"github.com/gofiber/fiber/v2"
)

// GetApp 创建 fiber 应用，webDir 非空时同时提供前端页面
func GetApp(webDir string) *fiber.App {
	app := start.GetApp()

	RegisterStaticFiles(app, webDir, "/")

	return app
}

// RegisterStaticFiles 配置静态文件服务，用于提供打包后的前端页面
func RegisterStaticFiles(app *fiber.App, staticPath string, prefixPath string) {
	if staticPath == "" {
		return
	}

	app.Static(prefixPath, staticPath, fiber.Static{
		Compress:      true,
		ByteRange:     true,
		Browse:        false,
		Index:         "index.html",
		CacheDuration: 10 * time.Minute,
	})

	// SPA 路由回退到 index.html，接口路径放行
	app.Get("*", func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range []string{"/api", "/packages/download", "/health"} {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		switch getFileExtension(path) {
		case ".js", ".css", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".woff", ".woff2", ".ttf", ".eot":
			return c.Next()
		}

		return c.SendFile(staticPath + "/index.html")
	})

	if base.Logger != nil {
		base.Logger.WithField("path", staticPath).WithField("prefix", prefixPath).Info("已注册静态文件服务")
	}
}

// 获取文件扩展名
func getFileExtension(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}
