package config

// MailConfig 邮件通知配置
type MailConfig struct {
	SMTPServer string   `yaml:"smtp-server"`
	SMTPPort   int      `yaml:"smtp-port"`
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	From       string   `yaml:"from"`
	Recipients []string `yaml:"recipients"`
}

func (m MailConfig) Enabled() bool {
	return m.SMTPServer != "" && m.From != ""
}
