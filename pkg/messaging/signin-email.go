package messaging

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	smtpclient "github.com/willem4130/thecareranchintake/pkg/smtp-client"
)

var smtpClients *smtpclient.SmtpClients

// InitMessageSending wires the SMTP connection pool used for sign-in mails.
func InitMessageSending(clients *smtpclient.SmtpClients) {
	smtpClients = clients
}

const signInEmailSubject = "Your sign-in link"

const signInEmailTemplate = `
<p>Hello,</p>
<p>Use the link below to sign in and continue your intake questionnaire. The link can be used once and expires after {{.ExpiresInMinutes}} minutes.</p>
<p><a href="{{.SignInURL}}">Sign in</a></p>
<p>If you did not request this email, you can safely ignore it.</p>
`

var signInEmail = template.Must(template.New("signInEmail").Parse(signInEmailTemplate))

type SignInEmailPayload struct {
	SignInURL        string
	ExpiresInMinutes int
}

// SendSignInEmail delivers the magic-link email for the address.
func SendSignInEmail(to string, payload SignInEmailPayload) error {
	if smtpClients == nil {
		return errors.New("message sending not initialized")
	}

	var content bytes.Buffer
	if err := signInEmail.Execute(&content, payload); err != nil {
		return fmt.Errorf("could not render sign-in email: %w", err)
	}

	if err := smtpClients.SendMail([]string{to}, signInEmailSubject, content.String()); err != nil {
		slog.Error("failed to send sign-in email", slog.String("error", err.Error()))
		return err
	}
	return nil
}
