package infra

import (
	"fmt"
	"net/smtp"

	"obranza/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for the transactional emails of the auth
// flows. Sends are fire-and-forget from the caller's point of view: failures
// are logged by the worker, never surfaced to the requesting user.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	baseURL  string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		baseURL:  cfg.BaseURL,
	}
}

// SendVerificationEmail sends the account verification link.
func (m *Mailer) SendVerificationEmail(to, token, nombre string) error {
	url := fmt.Sprintf("%s/api/auth/verify?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hola %s,\n\nPara activar tu cuenta de Obranza hacé clic en el siguiente enlace:\n\n%s\n\nEl enlace vence en 24 horas.\n",
		nombre, url)
	return m.send(to, "Verificá tu cuenta de Obranza", body)
}

// SendPasswordResetEmail sends the password reset link.
func (m *Mailer) SendPasswordResetEmail(to, token, nombre string) error {
	url := fmt.Sprintf("%s/login/reset-password?token=%s", m.baseURL, token)
	body := fmt.Sprintf(
		"Hola %s,\n\nRecibimos un pedido para restablecer tu contraseña:\n\n%s\n\nEl enlace vence en 1 hora. Si no fuiste vos, ignorá este correo.\n",
		nombre, url)
	return m.send(to, "Restablecer contraseña — Obranza", body)
}

func (m *Mailer) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
