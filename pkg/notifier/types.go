// Package notifier 提供邮件通知功能的实现
package notifier

import "time"

// Notification 一条通知
type Notification struct {
	Title   string
	Content string
	// Recipients 附加收件人，与配置中的收件人合并
	Recipients []string
	// Data 以表格形式展示的字段，按 Keys 的顺序输出
	Keys      []string
	Data      map[string]string
	CreatedAt time.Time
}

// Notifier 通知发送接口
type Notifier interface {
	Send(notification *Notification) error
}
