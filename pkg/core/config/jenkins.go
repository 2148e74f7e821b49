package config

// JenkinsConfig Jenkins 任务配置
type JenkinsConfig struct {
	Url        string `yaml:"url"`
	User       string `yaml:"user"`
	Token      string `yaml:"token"`
	MergeJob   string `yaml:"merge-job"`
	DeployJob  string `yaml:"deploy-job"`
	ReleaseJob string `yaml:"release-job"`
	// Timeout 秒
	Timeout int `yaml:"timeout"`
}
