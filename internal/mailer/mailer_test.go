package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

func TestNew_DisabledWithoutHost(t *testing.T) {
	m := New(&config.MailConfig{Enabled: true}, zap.NewNop())
	assert.False(t, m.Enabled())

	err := m.Send(context.Background(), &Message{To: "a@example.com"})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSend_WritesHeadersAndAttachment(t *testing.T) {
	rec := &recordingSender{}
	m := newWithSender(rec, "office@mrqzremodeling.com", zap.NewNop())

	err := m.Send(context.Background(), &Message{
		To:             "owner@example.com",
		Subject:        "Cotización unidad 101",
		Body:           "Adjunto la cotización.",
		AttachmentName: "proyecto-101.pdf",
		Attachment:     []byte("%PDF-1.4 test"),
	})
	require.NoError(t, err)
	require.Len(t, rec.sent, 1)

	msg := rec.sent[0]
	assert.Equal(t, []string{"office@mrqzremodeling.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "proyecto-101.pdf")
}

func TestSend_PropagatesSenderError(t *testing.T) {
	m := newWithSender(&recordingSender{err: errors.New("connection refused")}, "x@example.com", zap.NewNop())

	err := m.Send(context.Background(), &Message{To: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSend_CancelledContext(t *testing.T) {
	rec := &recordingSender{}
	m := newWithSender(rec, "x@example.com", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, &Message{To: "a@example.com"}), context.Canceled)
	assert.Empty(t, rec.sent)
}
