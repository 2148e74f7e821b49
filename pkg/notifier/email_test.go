package notifier

import (
	"errors"
	"net/smtp"
	"testing"

	"relman/pkg/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.MailConfig {
	return config.MailConfig{
		SMTPServer: "smtp.example.com",
		SMTPPort:   25,
		From:       "relman@example.com",
		Recipients: []string{"qa@example.com", "dev@example.com"},
	}
}

func TestNewEmailNotifier_Validate(t *testing.T) {
	_, err := NewEmailNotifier(config.MailConfig{})
	assert.Error(t, err)

	cfg := testConfig()
	cfg.SMTPPort = 0
	_, err = NewEmailNotifier(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.From = ""
	_, err = NewEmailNotifier(cfg)
	assert.Error(t, err)
}

func TestEmailNotifier_Send(t *testing.T) {
	n, err := NewEmailNotifier(testConfig())
	require.NoError(t, err)

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	n.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err = n.Send(&Notification{
		Title:      "基线更新",
		Content:    "基线 12 已更新",
		Recipients: []string{"dev@example.com", "alice@example.com"},
		Keys:       []string{"sqlno", "versionno"},
		Data:       map[string]string{"sqlno": "A,B", "versionno": "1.0"},
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:25", gotAddr)
	assert.Equal(t, []string{"dev@example.com", "alice@example.com", "qa@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "From: relman@example.com")
	assert.Contains(t, gotMsg, "<td>sqlno</td><td>A,B</td>")
	assert.Contains(t, gotMsg, "基线 12 已更新")
}

func TestEmailNotifier_SendError(t *testing.T) {
	n, err := NewEmailNotifier(testConfig())
	require.NoError(t, err)
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.Error(t, n.Send(&Notification{Title: "x"}))
}
