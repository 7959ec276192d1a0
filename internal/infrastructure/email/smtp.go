package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	sharedConfig "github.com/tenantdesk/helpdesk/internal/shared/config"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

func SMTPConfigFrom(cfg sharedConfig.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier e-mails assignees when a ticket is assigned to them.
type SMTPNotifier struct {
	config SMTPConfig
	sender sender
	logger logger.Interface
}

var _ services.AssignmentNotifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(config SMTPConfig, logger logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPNotifier{
		config: config,
		sender: dialer,
		logger: logger,
	}
}

// NewNotifier returns the SMTP notifier when e-mail is enabled and a no-op
// otherwise.
func NewNotifier(cfg sharedConfig.EmailConfig, logger logger.Interface) services.AssignmentNotifier {
	if !cfg.Enabled || cfg.SMTPHost == "" {
		logger.Infow("assignment e-mails disabled")
		return services.NopNotifier{}
	}
	return NewSMTPNotifier(SMTPConfigFrom(cfg), logger)
}

func (s *SMTPNotifier) NotifyAssigned(ctx context.Context, notice services.AssignmentNotice) error {
	if notice.AssigneeEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("[%s] Ticket assigned to you", notice.Reference)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>%s assigned ticket <strong>%s</strong> to you:</p>
			<p>%s</p>
		</body>
		</html>
	`, html.EscapeString(notice.AssigneeName), html.EscapeString(notice.AssignedBy),
		html.EscapeString(notice.Reference), html.EscapeString(notice.Title))

	plainBody := fmt.Sprintf(`
Hello %s,

%s assigned ticket %s to you:

%s
	`, notice.AssigneeName, notice.AssignedBy, notice.Reference, notice.Title)

	if err := s.sendEmail(notice.AssigneeEmail, subject, htmlBody, plainBody); err != nil {
		s.logger.Warnw("assignment e-mail failed", "ticket_sid", notice.TicketSID, "to", notice.AssigneeEmail, "error", err)
		return err
	}
	s.logger.Infow("assignment e-mail sent", "ticket_sid", notice.TicketSID, "to", notice.AssigneeEmail)
	return nil
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
