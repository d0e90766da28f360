package service

import (
	"testing"

	"campus/config"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateResetEmailBody(t *testing.T) {
	s := newTestEmailService()
	body := s.generateResetEmailBody("https://example.com/reset?token=abc")
	assert.Contains(t, body, "https://example.com/reset?token=abc")
	assert.Contains(t, body, "重置密码")
	assert.Contains(t, body, "30 分钟")
}

func TestGenerateNotificationEmailBody(t *testing.T) {
	s := newTestEmailService()
	body := s.generateNotificationEmailBody("秋季学期开学通知", "全体学生请于9月1日前报到。")
	assert.Contains(t, body, "秋季学期开学通知")
	assert.Contains(t, body, "全体学生请于9月1日前报到。")
	assert.Contains(t, body, "通知公告")
}

func TestSendNotificationEmail_Disabled(t *testing.T) {
	s := newTestEmailService()
	err := s.SendNotificationEmail("标题", "正文")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "未启用")
}

func TestSendNotificationEmail_NoRecipients(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: true})
	err := s.SendNotificationEmail("标题", "正文")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "收件人")
}
