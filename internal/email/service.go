package email

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"

	"github.com/brandazine/stock-nudge/pkg/logger"
)

//go:embed templates/stock_nudge_email.html
var stockNudgeBody string

const (
	subject        = "[브랜더진] 인기재고 추가 입고요청"
	attachmentMIME = "application/vnd.ms-excel"
)

// ReportMail is one brand's restock request with the xlsx sheet attached.
type ReportMail struct {
	BrandName      string
	Recipients     []string
	AttachmentName string
	Attachment     []byte
}

// Sender delivers restock request mails.
type Sender interface {
	SendReport(ctx context.Context, mail *ReportMail) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Mode is the service mode; anything but "production" suppresses sends.
	Mode string
	// RatePerSecond throttles sends so the SMTP relay does not defer us.
	RatePerSecond float64
}

type smtpSender struct {
	cfg     Config
	limiter *rate.Limiter
	logger  *logger.Logger
	send    func(m *gomail.Message) error
}

func NewSMTPSender(cfg Config, logger *logger.Logger) Sender {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 1
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &smtpSender{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		logger:  logger,
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

func (s *smtpSender) SendReport(ctx context.Context, mail *ReportMail) error {
	if len(mail.Recipients) == 0 {
		return fmt.Errorf("no recipients for brand %s", mail.BrandName)
	}

	if s.cfg.Mode != "production" {
		s.logger.Info("suppressing mail outside production",
			"mode", s.cfg.Mode, "brand", mail.BrandName)
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for send slot: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", mail.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", stockNudgeBody)
	m.Attach(mail.AttachmentName,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(mail.Attachment)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {attachmentMIME},
		}),
	)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send report mail: %w", err)
	}
	return nil
}
