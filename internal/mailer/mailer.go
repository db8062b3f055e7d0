// Package mailer delivers outbound email over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mrqz-remodeling/console-api/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrDisabled is returned by Send when SMTP delivery is not configured
var ErrDisabled = errors.New("mail delivery is disabled")

// Message is a single outbound email with an optional attachment
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// sender is satisfied by *gomail.Dialer
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends messages from the configured address
type Mailer struct {
	sender  sender
	from    string
	enabled bool
	logger  *zap.Logger
}

// New builds a Mailer from configuration. A disabled mailer rejects every send.
func New(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{
		from:    cfg.From,
		enabled: cfg.Enabled && cfg.Host != "",
		logger:  logger,
	}
	if m.enabled {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		logger.Info("Mailer initialized", zap.String("host", cfg.Host), zap.Int("port", cfg.Port))
	} else {
		logger.Info("Mailer disabled")
	}
	return m
}

func newWithSender(s sender, from string, logger *zap.Logger) *Mailer {
	return &Mailer{sender: s, from: from, enabled: true, logger: logger}
}

// Enabled reports whether messages can be delivered
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// Send delivers msg. The SMTP dialer is not context-aware, so ctx is only
// checked before dialing.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if !m.enabled {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if len(msg.Attachment) > 0 {
		data := msg.Attachment
		gm.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	if err := m.sender.DialAndSend(gm); err != nil {
		m.logger.Error("Email send failed",
			zap.String("to_email", msg.To),
			zap.String("subject", msg.Subject),
			zap.Bool("has_attachment", len(msg.Attachment) > 0),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("Email sent",
		zap.String("to_email", msg.To),
		zap.String("subject", msg.Subject),
		zap.Bool("has_attachment", len(msg.Attachment) > 0),
	)
	return nil
}
