package config

// OssConfig OSS配置结构体
type OssConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access-key"`
	AccessKeySecret string `yaml:"access-secret"`
	Bucket          string `yaml:"bucket-name"`
	Prefix          string `yaml:"prefix"`
}
