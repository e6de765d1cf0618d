package registration

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/International-Combat-Archery-Alliance/email"
)

//go:embed templates
var templates embed.FS

var _ FailureNotifier = &EmailFailureNotifier{}

// EmailFailureNotifier mails the admins whenever finalization fails.
type EmailFailureNotifier struct {
	sender      email.Sender
	fromAddress string
	toAddresses []string
}

func NewEmailFailureNotifier(sender email.Sender, fromAddress string, toAddresses []string) *EmailFailureNotifier {
	return &EmailFailureNotifier{
		sender:      sender,
		fromAddress: fromAddress,
		toAddresses: toAddresses,
	}
}

func (n *EmailFailureNotifier) NotifyFinalizeFailure(ctx context.Context, failure FinalizeFailure) error {
	htmlBody, err := makeHtmlBody(failure)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeTextOnlyBody(failure)
	if err != nil {
		return err
	}

	return n.sender.SendEmail(ctx, email.Email{
		FromAddress: n.fromAddress,
		ToAddresses: n.toAddresses,
		Subject:     fmt.Sprintf("Registration finalization failed - session %q", failure.SessionID),
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeHtmlBody(failure FinalizeFailure) (string, error) {
	tmpl, err := htmltemplate.ParseFS(templates, "templates/finalize-failure.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Failure": failure,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func makeTextOnlyBody(failure FinalizeFailure) (string, error) {
	tmpl, err := texttemplate.ParseFS(templates, "templates/finalize-failure-textonly.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Failure": failure,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
