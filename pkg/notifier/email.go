package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"relman/pkg/core/config"

	"go.uber.org/zap"
)

// EmailNotifier 邮件通知器
type EmailNotifier struct {
	config   config.MailConfig
	logger   *zap.Logger
	body     *template.Template
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// 默认的邮件内容模板
const defaultBodyTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { width: 100%; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f5f5f5; padding: 10px; border-radius: 5px; }
        .footer { font-size: 12px; color: #999; margin-top: 30px; }
        table { width: 100%; border-collapse: collapse; margin: 15px 0; }
        th, td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f5f5f5; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>{{.Title}}</h2></div>
        <div class="content">
            <div>{{.Content}}</div>
            <p><strong>发送时间:</strong> {{formatTime .CreatedAt}}</p>
            {{if .Keys}}
            <table>
                <tr><th>字段</th><th>值</th></tr>
                {{range $key := .Keys}}
                <tr><td>{{$key}}</td><td>{{index $.Data $key}}</td></tr>
                {{end}}
            </table>
            {{end}}
        </div>
        <div class="footer"><p>此邮件由版本管理系统自动发送，请勿回复。</p></div>
    </div>
</body>
</html>
`

// NewEmailNotifier 创建新的邮件通知器
func NewEmailNotifier(cfg config.MailConfig) (*EmailNotifier, error) {
	if cfg.SMTPServer == "" {
		return nil, fmt.Errorf("SMTP服务器地址不能为空")
	}
	if cfg.SMTPPort == 0 {
		return nil, fmt.Errorf("SMTP服务器端口不能为0")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("发件人地址不能为空")
	}

	body, err := template.New("body").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
	}).Parse(defaultBodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("解析正文模板失败: %w", err)
	}

	logger, _ := zap.NewProduction()

	return &EmailNotifier{
		config:   cfg,
		logger:   logger,
		body:     body,
		sendMail: smtp.SendMail,
	}, nil
}

// Send 发送邮件通知
func (n *EmailNotifier) Send(notification *Notification) error {
	recipients := n.recipients(notification.Recipients)
	if len(recipients) == 0 {
		return fmt.Errorf("收件人列表不能为空")
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	var bodyBuf bytes.Buffer
	if err := n.body.Execute(&bodyBuf, notification); err != nil {
		return fmt.Errorf("渲染正文模板失败: %w", err)
	}

	message := n.buildMessage(notification.Title, recipients, bodyBuf.String())
	if err := n.send(recipients, message); err != nil {
		n.logger.Error("邮件通知发送失败",
			zap.String("title", notification.Title),
			zap.Error(err))
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	n.logger.Info("邮件通知发送成功",
		zap.String("title", notification.Title),
		zap.Strings("recipients", recipients))
	return nil
}

// recipients 合并配置与通知中的收件人，去重并保持顺序
func (n *EmailNotifier) recipients(extra []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range [][]string{extra, n.config.Recipients} {
		for _, r := range list {
			r = strings.TrimSpace(r)
			if r == "" {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// buildMessage 构建邮件消息
func (n *EmailNotifier) buildMessage(subject string, recipients []string, body string) []byte {
	var message bytes.Buffer

	message.WriteString(fmt.Sprintf("From: %s\r\n", n.config.From))
	message.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(recipients, ", ")))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject)))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	return message.Bytes()
}

// send 发送邮件
func (n *EmailNotifier) send(recipients []string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", n.config.SMTPServer, n.config.SMTPPort)

	var auth smtp.Auth
	if n.config.Username != "" && n.config.Password != "" {
		auth = smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.SMTPServer)
	}

	return n.sendMail(addr, auth, n.config.From, recipients, message)
}
