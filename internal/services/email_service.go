package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// AWSSESMailer sends password-reset emails using AWS SES.
type AWSSESMailer struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

func NewAWSSESMailer(region, fromAddress string, logger *slog.Logger) (*AWSSESMailer, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESMailer{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SendPasswordReset delivers the reset URL carrying the plaintext secret.
// The secret exists only in this email; the server keeps just its digest.
func (m *AWSSESMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	textBody := fmt.Sprintf(`Forgot your password? Submit a PATCH request with your new password and passwordConfirm to:

%s

This link is valid for 10 minutes.

If you didn't forget your password, please ignore this email.
`, resetURL)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1>Reset your password</h1>
        <p>Forgot your password? Submit a PATCH request with your new password and passwordConfirm to the link below:</p>
        <p><a href="%s" style="display: inline-block; background-color: #0066cc; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Reset Password</a></p>
        <p>Or copy and paste this link in your browser:<br><code>%s</code></p>
        <p><strong>This link is valid for 10 minutes.</strong></p>
        <p>If you didn't forget your password, please ignore this email.</p>
    </div>
</body>
</html>
`, resetURL, resetURL)

	input := &ses.SendEmailInput{
		Source: aws.String(m.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Your password reset token (valid for 10 min)"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := m.sesClient.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("password reset email sent",
		slog.String("message_id", aws.ToString(result.MessageId)))

	return nil
}
