package start

import (
	"fmt"
	"net"
	"time"

	"relman/pkg/core/config"
	"relman/pkg/core/logger"
	"relman/pkg/core/security"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type Config struct {
	AppName  string               `yaml:"app-name"`
	Env      string               `yaml:"env"`
	Host     string               `yaml:"host"`
	Port     int                  `yaml:"port"`
	WebDir   string               `yaml:"web-dir"`
	Log      config.LogConfig     `yaml:"log"`
	Jwt      config.JwtConfig     `yaml:"jwt"`
	Database config.Database      `yaml:"db"`
	Jenkins  config.JenkinsConfig `yaml:"jenkins"`
	Mail     config.MailConfig    `yaml:"mail"`
	Storage  config.StorageConfig `yaml:"storage"`
	Zipkin   config.ZipkinConfig  `yaml:"zipkin"`
}

type Configures struct {
	Config   Config
	Logger   *logger.Log
	UserAuth *security.UserAuth
}

// ParseConfig 解析 YAML 配置并补齐默认值
func ParseConfig(file []byte, env string) (Config, error) {
	cfg := Config{
		AppName: "relman",
		Port:    8080,
		Storage: config.DefaultStorageConfig(),
	}
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return cfg, err
	}
	if env != "" {
		cfg.Env = env
	}
	if cfg.Jwt.ExpireTime <= 0 {
		cfg.Jwt.ExpireTime = 24
	}
	return cfg, nil
}

func NewConfigures(file []byte, env string) *Configures {
	cfg, err := ParseConfig(file, env)
	if err != nil {
		panic(fmt.Sprintf("读取配置文件失败，因为%v", err))
	}
	cfg.Host = getLocalIP()

	c := &Configures{
		Config: cfg,
		Logger: logger.InitLogger(cfg.Log.Level),
	}
	if cfg.Log.Sls {
		c.Logger.Send2Cloud(cfg.AppName, cfg.Host, cfg.Log)
	}
	c.UserAuth = c.EnableUserAuth()
	return c
}

// getLocalIP 获取本机IP地址（优先内网IP）
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}

	var fallback string
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		if ipnet.IP.IsPrivate() {
			return ipnet.IP.String()
		}
		if fallback == "" {
			fallback = ipnet.IP.String()
		}
	}
	if fallback == "" {
		return "127.0.0.1"
	}
	return fallback
}

func (c *Configures) EnableUserAuth() *security.UserAuth {
	return security.NewUserAuth([]byte(c.Config.Jwt.Secret), time.Duration(c.Config.Jwt.ExpireTime)*time.Hour)
}

func (c *Configures) EnableDB() *gorm.DB {
	db, err := config.InitDB(c.Config.Database)
	if err != nil {
		c.Logger.WithField("database", c.Config.Database.Host).WithErr(err).Panic("failed connect database")
	}
	c.Logger.Info("connect database success")
	return db
}
