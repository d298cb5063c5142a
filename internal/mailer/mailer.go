// Package mailer delivers transactional email through SES when configured,
// falling back to SMTP, falling back to a console-logged simulation so
// development setups work with no mail credentials at all.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/kinostream/backend/internal/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// New builds the delivery chain from config.
func New(cfg *config.Config) Mailer {
	chain := []Mailer{}

	if cfg.SESRegion != "" {
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.SESRegion)})
		if err != nil {
			log.Println("⚠️  SES session failed, skipping SES mailer:", err)
		} else {
			chain = append(chain, &SESMailer{svc: ses.New(sess), from: cfg.EmailFrom})
		}
	}

	if cfg.SMTPHost != "" {
		chain = append(chain, &SMTPMailer{
			addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
			auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
			from: cfg.EmailFrom,
		})
	}

	chain = append(chain, &LogMailer{})

	if len(chain) == 1 {
		return chain[0]
	}
	return &FallbackMailer{chain: chain}
}

// FallbackMailer tries each mailer in order until one succeeds.
type FallbackMailer struct {
	chain []Mailer
}

func (m *FallbackMailer) Send(to, subject, body string) error {
	var lastErr error
	for _, mailer := range m.chain {
		if err := mailer.Send(to, subject, body); err != nil {
			lastErr = err
			log.Printf("⚠️  mail delivery failed (%T): %v", mailer, err)
			continue
		}
		return nil
	}
	return lastErr
}

type SESMailer struct {
	svc  *ses.SES
	from string
}

func (m *SESMailer) Send(to, subject, body string) error {
	_, err := m.svc.SendEmail(&ses.SendEmailInput{
		Source:      aws.String(m.from),
		Destination: &ses.Destination{ToAddresses: []*string{aws.String(to)}},
		Message: &ses.Message{
			Subject: &ses.Content{Data: aws.String(subject)},
			Body:    &ses.Body{Text: &ses.Content{Data: aws.String(body)}},
		},
	})
	return err
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

// LogMailer simulates delivery by printing the mail; the terminal fallback.
type LogMailer struct{}

func (m *LogMailer) Send(to, subject, body string) error {
	log.Printf("📧 [simulated] to=%s subject=%q\n%s", to, subject, body)
	return nil
}
