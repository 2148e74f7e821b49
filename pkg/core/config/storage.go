package config

// StorageConfig 更新包存储配置
type StorageConfig struct {
	// Mode local 或 oss
	Mode     string    `yaml:"mode"`
	LocalDir string    `yaml:"local-dir"`
	Oss      OssConfig `yaml:"oss"`
}

func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:     "local",
		LocalDir: "/opt/relman/packages",
	}
}
