package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// GomailMailer implements Mailer over SMTP.
type GomailMailer struct {
	dialer     *gomail.Dialer
	from       string
	senderName string
	logger     *zap.Logger
}

func NewGomailMailer(host string, port int, username, password, from, senderName string, logger *zap.Logger) *GomailMailer {
	return &GomailMailer{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       from,
		senderName: senderName,
		logger:     logger.Named("GomailMailer"),
	}
}

func (m *GomailMailer) SendActivationEmail(toEmail, toName, code string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.senderName)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Activez votre compte Rappel")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Bonjour %s,</p>
<p>Votre code de vérification est : <b>%s</b></p>
<p>Saisissez ce code pour activer votre compte.</p>`, toName, code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send activation email",
			zap.String("toEmail", toEmail), zap.Error(err))
		return fmt.Errorf("send activation email: %w", err)
	}
	m.logger.Info("Activation email sent", zap.String("toEmail", toEmail))
	return nil
}

func (m *GomailMailer) SendLeadConfirmation(toEmail, toName string, details LeadDetails) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.senderName)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Votre demande a bien été enregistrée")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Bonjour %s,</p>
<p>Nous avons bien reçu votre demande : %s</p>
<p>Créneau souhaité : %s. Un prestataire vous contactera au %s.</p>`,
		toName, details.Need, details.TimeSlot, details.Phone))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send lead confirmation email",
			zap.String("toEmail", toEmail), zap.Error(err))
		return fmt.Errorf("send lead confirmation: %w", err)
	}
	m.logger.Info("Lead confirmation email sent", zap.String("toEmail", toEmail))
	return nil
}
