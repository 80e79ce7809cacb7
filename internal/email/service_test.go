package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"

	"github.com/brandazine/stock-nudge/pkg/logger"
)

func testSender(mode string, send func(m *gomail.Message) error) *smtpSender {
	return &smtpSender{
		cfg: Config{
			From: "Brandazine <hello@brandazine.com>",
			Mode: mode,
		},
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  logger.NewLogger(nil),
		send:    send,
	}
}

func testMail() *ReportMail {
	return &ReportMail{
		BrandName:      "브랜드A",
		Recipients:     []string{"admin@branda.com", "thkim@brandazine.com"},
		AttachmentName: "240615_브랜드A_인기재고.xlsx",
		Attachment:     []byte("xlsx-bytes"),
	}
}

func TestSendReportSuppressedOutsideProduction(t *testing.T) {
	for _, mode := range []string{"test", "debug", "local", "staging"} {
		sent := false
		sender := testSender(mode, func(m *gomail.Message) error {
			sent = true
			return nil
		})

		err := sender.SendReport(context.Background(), testMail())
		require.NoError(t, err, mode)
		assert.False(t, sent, "mode %s must not send", mode)
	}
}

func TestSendReportInProduction(t *testing.T) {
	var got *gomail.Message
	sender := testSender("production", func(m *gomail.Message) error {
		got = m
		return nil
	})

	err := sender.SendReport(context.Background(), testMail())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{subject}, got.GetHeader("Subject"))
	assert.Equal(t, []string{"admin@branda.com", "thkim@brandazine.com"}, got.GetHeader("To"))
}

func TestSendReportNoRecipients(t *testing.T) {
	sender := testSender("production", func(m *gomail.Message) error { return nil })

	mail := testMail()
	mail.Recipients = nil
	err := sender.SendReport(context.Background(), mail)
	assert.Error(t, err)
}
