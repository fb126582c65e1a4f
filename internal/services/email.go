package services

import (
	"blogtalks/internal/config"
	"blogtalks/internal/logger"
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) Send(to []string, subject, body string) error {
	msg := []byte("Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, to, msg)
}

// SendPasswordReset кладёт письмо со ссылкой сброса в очередь.
func (s *EmailService) SendPasswordReset(_ context.Context, to, resetLink string) error {
	body := fmt.Sprintf(`Чтобы сбросить пароль, перейдите по ссылке:
%s

Если вы не запрашивали сброс пароля, просто проигнорируйте это письмо.
`, resetLink)

	EmailQueue <- EmailJob{
		To:      []string{to},
		Subject: "Сброс пароля",
		Body:    body,
	}
	return nil
}

type EmailJob struct {
	To      []string
	Subject string
	Body    string
}

var EmailQueue = make(chan EmailJob, 100) // глобальная очередь на 100 писем

func StartEmailWorker(emailService *EmailService) {
	go func() {
		for job := range EmailQueue {
			if err := emailService.Send(job.To, job.Subject, job.Body); err != nil {
				logger.Log.Error("Не удалось отправить письмо", zap.Error(err))
			}
		}
	}()
}
