package email

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	sharedConfig "github.com/tenantdesk/helpdesk/internal/shared/config"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, m...)
	return nil
}

func newTestNotifier(s sender) *SMTPNotifier {
	return &SMTPNotifier{
		config: SMTPConfig{FromAddress: "desk@acme.io", FromName: "Desk"},
		sender: s,
		logger: logger.NewNopLogger(),
	}
}

var notice = services.AssignmentNotice{
	TicketSID:     "tkt_1",
	Reference:     "ACM-0001",
	Title:         "Printer <jam>",
	AssigneeEmail: "ops@acme.io",
	AssigneeName:  "Ops",
	AssignedBy:    "Una One",
}

func TestSMTPNotifier_NotifyAssigned(t *testing.T) {
	capture := &captureSender{}
	n := newTestNotifier(capture)

	require.NoError(t, n.NotifyAssigned(context.Background(), notice))
	require.Len(t, capture.sent, 1)

	m := capture.sent[0]
	assert.Equal(t, []string{"ops@acme.io"}, m.GetHeader("To"))
	assert.Equal(t, []string{"[ACM-0001] Ticket assigned to you"}, m.GetHeader("Subject"))
}

func TestSMTPNotifier_SkipsMissingAddress(t *testing.T) {
	capture := &captureSender{}
	n := newTestNotifier(capture)

	blank := notice
	blank.AssigneeEmail = ""
	require.NoError(t, n.NotifyAssigned(context.Background(), blank))
	assert.Empty(t, capture.sent)
}

func TestSMTPNotifier_SendFailure(t *testing.T) {
	n := newTestNotifier(&captureSender{err: stderrors.New("connection refused")})
	err := n.NotifyAssigned(context.Background(), notice)
	assert.ErrorContains(t, err, "connection refused")
}

func TestNewNotifier(t *testing.T) {
	log := logger.NewNopLogger()

	_, ok := NewNotifier(sharedConfig.EmailConfig{Enabled: false, SMTPHost: "mail"}, log).(services.NopNotifier)
	assert.True(t, ok)

	_, ok = NewNotifier(sharedConfig.EmailConfig{Enabled: true, SMTPHost: "mail", SMTPPort: 25}, log).(*SMTPNotifier)
	assert.True(t, ok)
}
