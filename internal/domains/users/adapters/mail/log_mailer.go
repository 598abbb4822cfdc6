package mail

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"

	userports "github.com/Apurer/shop-users-api/internal/domains/users/ports"
)

const activationSubject = "Activate your shop account"

var activationBody = template.Must(template.New("activation").Parse(
	`Hello {{.FirstName}},

your account is almost ready. Open the link below to activate it:

{{.Link}}
`))

var _ userports.Mailer = (*LogMailer)(nil)

// LogMailer renders activation mails and writes them to the log instead of an SMTP relay.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// SendActivationMail renders the message for notice and logs it.
func (m *LogMailer) SendActivationMail(ctx context.Context, notice userports.ActivationNotice) error {
	body, err := RenderActivationBody(notice)
	if err != nil {
		return err
	}
	m.logger.LogAttrs(ctx, slog.LevelInfo, "activation mail",
		slog.Int64("user_id", notice.UserID),
		slog.String("to", notice.Email),
		slog.String("subject", activationSubject),
		slog.String("body", body),
	)
	return nil
}

// RenderActivationBody produces the plain-text activation message.
func RenderActivationBody(notice userports.ActivationNotice) (string, error) {
	if notice.Link == "" {
		return "", fmt.Errorf("activation link missing for user %d", notice.UserID)
	}
	var buf bytes.Buffer
	if err := activationBody.Execute(&buf, notice); err != nil {
		return "", err
	}
	return buf.String(), nil
}
