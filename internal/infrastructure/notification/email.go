package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/infrastructure/config"
)

// subjects and bodies per notification kind
var templates = map[ordering.NotificationKind]struct {
	subject string
	body    string
}{
	ordering.NotificationUserRegistered: {
		subject: "Welcome to OrderHub",
		body:    "Your account has been registered. You can now log in and place orders.",
	},
	ordering.NotificationOrderCreated: {
		subject: "Order confirmation",
		body:    "Your order has been placed. Our operator will contact you shortly to confirm the details.",
	},
	ordering.NotificationOrderUpdated: {
		subject: "Order updated",
		body:    "Your order has been updated. You can check its status in the Orders section.",
	},
	ordering.NotificationPasswordReset: {
		subject: "Password reset",
		body:    "A password reset was requested for your account.",
	},
}

// SMTPSink delivers notifications by e-mail. It implements
// ordering.Notifier; callers treat delivery as fire-and-forget.
type SMTPSink struct {
	cfg config.SMTPConfig
	// send is swappable for tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSink creates an e-mail notification sink
func NewSMTPSink(cfg config.SMTPConfig) *SMTPSink {
	return &SMTPSink{cfg: cfg, send: smtp.SendMail}
}

// Notify sends one e-mail to all recipients of the notification
func (s *SMTPSink) Notify(_ context.Context, n ordering.Notification) error {
	if len(n.Recipients) == 0 {
		return nil
	}
	tpl, ok := templates[n.Kind]
	if !ok {
		return fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	subject := tpl.subject
	body := tpl.body
	if v, ok := n.Context["order_id"]; ok {
		body = fmt.Sprintf("%s\r\nOrder: %s", body, v)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(n.Recipients, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var a smtp.Auth
	if s.cfg.User != "" {
		a = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	if err := s.send(addr, a, s.cfg.From, n.Recipients, []byte(msg)); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
