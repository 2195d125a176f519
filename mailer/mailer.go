// Package mailer sends transactional email through Resend.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

type Client struct {
	resend *resend.Client
	from   string
	appURL string
}

func New(apiKey, from, appURL string) *Client {
	return &Client{
		resend: resend.NewClient(apiKey),
		from:   from,
		appURL: appURL,
	}
}

// Summary carries the figures rendered into the weekly summary email.
type Summary struct {
	TotalIncome   string
	TotalExpenses string
	FreeMoney     string
	SavingsRate   int
}

// SendPasswordReset mails a one-hour reset link.
func (c *Client) SendPasswordReset(ctx context.Context, to, name, token string) error {
	html, err := render(passwordResetTemplate, map[string]interface{}{
		"Name":      name,
		"ResetLink": fmt.Sprintf("%s/auth/reset-password?token=%s", c.appURL, token),
	})
	if err != nil {
		return err
	}
	return c.send(ctx, to, "🔐 Reset Your MoneyMap Password", html)
}

// SendWeeklySummary mails the user's weekly budget digest.
func (c *Client) SendWeeklySummary(ctx context.Context, to, name string, summary Summary) error {
	html, err := render(weeklySummaryTemplate, map[string]interface{}{
		"Name":    name,
		"Summary": summary,
		"AppURL":  c.appURL,
	})
	if err != nil {
		return err
	}
	return c.send(ctx, to, "📊 Your Weekly MoneyMap Summary", html)
}

func (c *Client) send(ctx context.Context, to, subject, html string) error {
	_, err := c.resend.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("error sending email to %s: %w", to, err)
	}
	return nil
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering email template: %w", err)
	}
	return buf.String(), nil
}

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>Someone requested a password reset for your MoneyMap account. Click the button below to choose a new password. The link expires in one hour.</p>
  <p style="margin: 24px 0;">
    <a href="{{.ResetLink}}" style="background: #3B82F6; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Reset Password</a>
  </p>
  <p>If you did not request this, you can safely ignore this email.</p>
  <p>— The MoneyMap Team</p>
</div>
`))

var weeklySummaryTemplate = template.Must(template.New("weekly_summary").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Your week at a glance</h2>
  <p>Hi {{.Name}},</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td style="padding: 8px 0;">Total Income</td><td style="text-align: right;"><strong>{{.Summary.TotalIncome}}</strong></td></tr>
    <tr><td style="padding: 8px 0;">Total Expenses</td><td style="text-align: right;"><strong>{{.Summary.TotalExpenses}}</strong></td></tr>
    <tr><td style="padding: 8px 0;">Free Money</td><td style="text-align: right;"><strong>{{.Summary.FreeMoney}}</strong></td></tr>
    <tr><td style="padding: 8px 0;">Savings Rate</td><td style="text-align: right;"><strong>{{.Summary.SavingsRate}}%</strong></td></tr>
  </table>
  <p style="margin: 24px 0;">
    <a href="{{.AppURL}}/dashboard" style="background: #3B82F6; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Open Dashboard</a>
  </p>
  <p>— The MoneyMap Team</p>
</div>
`))
