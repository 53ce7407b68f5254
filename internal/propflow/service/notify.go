package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
	"github.com/aussiebroadwan/propflow/pkg/slogx"
)

// InvitationNotifier delivers an invite link to the invitation's email.
type InvitationNotifier interface {
	NotifyInvitation(ctx context.Context, inv domain.Invitation, link string) error
}

// LogNotifier records that a notification would have been sent. The link
// carries the plaintext token, so it is never logged.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) NotifyInvitation(ctx context.Context, inv domain.Invitation, _ string) error {
	l := n.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.Info("invitation email skipped, no mail provider configured",
		slog.String("invitation_id", inv.ID),
		slogx.Email(inv.Email),
	)
	return nil
}

// SendGridNotifier sends invitation emails through SendGrid.
type SendGridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *SendGridNotifier) NotifyInvitation(ctx context.Context, inv domain.Invitation, link string) error {
	subject, plain, htmlBody := renderInvitationEmail(inv, link)

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail("", inv.Email)
	msg := mail.NewSingleEmail(from, subject, to, plain, htmlBody)

	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", resp.StatusCode)
	}
	return nil
}

func renderInvitationEmail(inv domain.Invitation, link string) (subject, plain, htmlBody string) {
	switch inv.Scope {
	case domain.ScopePlatform:
		subject = "You're invited to set up your company on PropFlow"
		plain = fmt.Sprintf("You have been invited to create a PropFlow account on the %s plan.\n\nGet started: %s\n\nThis link expires on %s.",
			inv.AssignedPlan, link, inv.ExpiresAt.Format("2 January 2006"))
	default:
		subject = fmt.Sprintf("Join %s on PropFlow", inv.CompanyName)
		plain = fmt.Sprintf("You have been invited to join %s on PropFlow as %s.\n\nAccept the invitation: %s\n\nThis link expires on %s.",
			inv.CompanyName, inv.Role, link, inv.ExpiresAt.Format("2 January 2006"))
	}

	htmlBody = fmt.Sprintf(`<html><body><h2>%s</h2><p><a href="%s">Accept your invitation</a></p><p>This link expires on %s.</p></body></html>`,
		html.EscapeString(subject), html.EscapeString(link), inv.ExpiresAt.Format("2 January 2006"))
	return subject, plain, htmlBody
}
