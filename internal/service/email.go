package service

import (
	"fmt"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	AppURL   string
}

type EmailService struct {
	config SMTPConfig
	logger *zap.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(config SMTPConfig, logger *zap.Logger) *EmailService {
	return &EmailService{config: config, logger: logger, send: smtp.SendMail}
}

// SendEmail delivers an HTML mail. Without SMTP configuration the mail is
// logged instead.
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.config.Host == "" || s.config.Port == "" {
		s.logger.Info("SMTP not configured, logging email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Int("body_length", len(body)))
		return nil
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, s.config.From, subject, body))

	addr := s.config.Host + ":" + s.config.Port
	if err := s.send(addr, auth, envelopeAddress(s.config.From), []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// envelopeAddress extracts a@b from "Name <a@b>".
func envelopeAddress(from string) string {
	if i := strings.LastIndexByte(from, '<'); i >= 0 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return from
}

var newsletterCopy = map[units.Locale]struct{ subject, greeting, body, unsubscribe string }{
	units.English: {
		subject:     "welcome to the bbq menu ai newsletter",
		greeting:    "Hi there,",
		body:        "Thanks for subscribing. Expect grill tips and fresh menus every week.",
		unsubscribe: "Unsubscribe",
	},
	units.German: {
		subject:     "willkommen beim bbq menu ai newsletter",
		greeting:    "Hallo,",
		body:        "Danke für dein Abonnement. Jede Woche gibt es Grilltipps und neue Menüs.",
		unsubscribe: "Abmelden",
	},
	units.Chinese: {
		subject:     "欢迎订阅 BBQ Menu AI",
		greeting:    "你好，",
		body:        "感谢订阅！我们每周为你送上烧烤技巧和新菜单。",
		unsubscribe: "退订",
	},
}

func (s *EmailService) SendNewsletterWelcome(sub *models.Subscriber) error {
	loc := units.ParseLocale(sub.Locale)
	text := newsletterCopy[loc]
	subject := cases.Title(loc.Tag()).String(text.subject)

	body := fmt.Sprintf(`<p>%s</p><p>%s</p><p><a href="%s/unsubscribe?email=%s">%s</a></p>`,
		text.greeting, text.body, strings.TrimRight(s.config.AppURL, "/"), url.QueryEscape(sub.Email), text.unsubscribe)
	return s.SendEmail(sub.Email, subject, body)
}
