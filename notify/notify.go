// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/devpatel66/golden-sleek-vision/models"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Notifier interface {
	Send(ctx context.Context, m Message) error
}

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, m Message) error {
	slog.Info("notification", "to", m.To, "subject", m.Subject)
	return nil
}

type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier sends plain-text mail through SES v2.
type SESNotifier struct {
	client sesAPI
	from   string
}

func NewSESNotifier(cfg aws.Config, from string) *SESNotifier {
	return &SESNotifier{client: sesv2.NewFromConfig(cfg), from: from}
}

func (n *SESNotifier) Send(ctx context.Context, m Message) error {
	out, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{m.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(m.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(m.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	slog.Info("email sent", "to", m.To, "message_id", aws.ToString(out.MessageId))
	return nil
}

// SettingReader reads a site setting with its default applied.
type SettingReader interface {
	Value(ctx context.Context, key string) string
}

// Alerts mails the site owner about new submissions while the
// email_alerts setting is on. Delivery failures are logged, never returned.
type Alerts struct {
	notifier Notifier
	settings SettingReader
	to       string
}

func NewAlerts(n Notifier, settings SettingReader, to string) *Alerts {
	return &Alerts{notifier: n, settings: settings, to: to}
}

func (a *Alerts) enabled(ctx context.Context) bool {
	if a == nil || a.notifier == nil || a.to == "" {
		return false
	}
	return a.settings.Value(ctx, models.SettingEmailAlerts) == "true"
}

func (a *Alerts) send(ctx context.Context, subject, text string) {
	if !a.enabled(ctx) {
		return
	}
	if err := a.notifier.Send(ctx, Message{To: a.to, Subject: subject, Text: text}); err != nil {
		slog.Error("failed to send alert", "subject", subject, "error", err)
	}
}

func (a *Alerts) NewContact(ctx context.Context, c models.ContactSubmission) {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", c.Name, c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n%s\n", c.Subject, c.Message)
	a.send(ctx, "New contact message: "+c.Subject, b.String())
}

func (a *Alerts) NewApplication(ctx context.Context, app models.JobApplication) {
	var b strings.Builder
	fmt.Fprintf(&b, "Position: %s\n", app.JobTitle)
	fmt.Fprintf(&b, "Applicant: %s %s <%s>\n", app.FirstName, app.LastName, app.Email)
	if app.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", app.Phone)
	}
	if app.ResumeURL != "" {
		fmt.Fprintf(&b, "Résumé: %s\n", app.ResumeURL)
	}
	if app.CoverLetter != "" {
		fmt.Fprintf(&b, "\n%s\n", app.CoverLetter)
	}
	a.send(ctx, fmt.Sprintf("New application: %s", app.JobTitle), b.String())
}
