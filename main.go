package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"relman/app"
	"relman/base"
	"relman/pkg/core/start"
	"relman/pkg/db"
	"relman/router"

	"github.com/spf13/cobra"
)

const (
	CmdServe   = "serve"
	CmdMigrate = "migrate"
	FlagEnv    = "env"
	FlagConfig = "config"
)

var (
	env        string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "relman",
	Short: "relman - 基线与发布包管理服务",
	Long: `relman 管理应用基线与发布包，合并基线并触发 Jenkins 更新、合并、部署和发布任务。

  relman serve --env dev                  # 启动 HTTP 服务
  relman migrate --config ./prod.yaml     # 只执行数据库迁移`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	serveCmd = &cobra.Command{
		Use:   CmdServe,
		Short: "迁移数据库并启动 HTTP 服务",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   CmdMigrate,
		Short: "执行数据库迁移和初始数据写入后退出",
		RunE:  runMigrate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&env, FlagEnv, "dev", "环境配置 (dev, prod, test等)")
	rootCmd.PersistentFlags().StringVar(&configPath, FlagConfig, "", "配置文件路径，默认为 ./resources/{env}.yaml")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup 读取配置、连接数据库并迁移。serve 时先初始化外部组件再创建模块
func setup(withComponents bool) (*start.Configures, *app.App, error) {
	filename := configPath
	if filename == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("获取当前文件位置失败: %w", err)
		}
		filename = filepath.Join(wd, "resources", env+".yaml")
	}
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	configures := start.NewConfigures(file, env)
	base.Configures = configures
	base.Logger = configures.Logger
	base.ENV = env
	base.UserAuth = configures.UserAuth
	base.DB = configures.EnableDB()

	if err := db.AutoMigrate(base.DB); err != nil {
		return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	if withComponents {
		if err := app.InitComponents(configures.Config); err != nil {
			return nil, nil, err
		}
	}

	appRoot := app.NewApp()
	if err := appRoot.Bootstrap(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("初始化数据失败: %w", err)
	}
	return configures, appRoot, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, _, err := setup(false)
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	configures, appRoot, err := setup(true)
	if err != nil {
		return err
	}

	fiberApp := app.GetApp(configures.Config.WebDir)
	router.Register(appRoot, fiberApp)

	addr := fmt.Sprintf(":%d", configures.Config.Port)
	base.Logger.WithField("addr", addr).Info("HTTP 服务启动")
	return fiberApp.Listen(addr)
}
