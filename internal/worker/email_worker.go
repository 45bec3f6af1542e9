package worker

// email_worker.go
// Processes email jobs from QueueEmail: account verification links and
// password reset links. Failures are logged, never retried into user flows.

import (
	"context"
	"encoding/json"

	"obranza/internal/infra"

	"github.com/rs/zerolog/log"
)

const (
	EmailVerificacion = "verificacion"
	EmailReset        = "reset"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Tipo    string `json:"tipo"` // verificacion | reset
	ToEmail string `json:"to_email"`
	Nombre  string `json:"nombre"`
	Token   string `json:"token"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends the transactional email for the payload.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	var err error
	switch payload.Tipo {
	case EmailVerificacion:
		err = w.mailer.SendVerificationEmail(payload.ToEmail, payload.Token, payload.Nombre)
	case EmailReset:
		err = w.mailer.SendPasswordResetEmail(payload.ToEmail, payload.Token, payload.Nombre)
	default:
		log.Warn().Str("tipo", payload.Tipo).Msg("email_worker: unknown email type — skipping")
		return
	}

	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Str("tipo", payload.Tipo).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("tipo", payload.Tipo).Msg("email_worker: email sent")
}
