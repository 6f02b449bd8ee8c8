package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"blog-backend/config"
	"blog-backend/internal/util"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
	baseURL  string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
		baseURL:  config.AppConfig.BaseURL,
	}
}

// SendWelcomeEmail 注册成功后发送欢迎邮件。
// SMTP 未配置时直接跳过，方便本地开发
func (s *EmailService) SendWelcomeEmail(email, username string) error {
	if s.username == "" || s.password == "" {
		util.Logger.Info("SMTP 未配置，跳过发送欢迎邮件", zap.String("to", email))
		return nil
	}

	subject := "欢迎加入"
	body := fmt.Sprintf("亲爱的 %s，\n\n欢迎加入！现在就去发布你的第一篇帖子吧：\n%s/new/", username, s.baseURL)

	s.sendEmailAsync(email, subject, body)
	return nil
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	if err := d.DialAndSend(m); err != nil {
		util.Logger.Error("发送邮件失败", zap.Error(err))
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
