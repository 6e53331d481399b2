package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends parent notifications via Amazon SES
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	parentEmail string
	enabled     bool
}

// NewEmailService creates a new email service. Leaving either address
// unconfigured yields a disabled service that silently skips sends.
func NewEmailService(awsRegion, fromEmail, fromName, parentEmail string) (*EmailService, error) {
	if fromEmail == "" || parentEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, to=%s, region=%s", fromEmail, parentEmail, awsRegion)
	return &EmailService{
		client:      sesv2.NewFromConfig(cfg),
		fromEmail:   fromEmail,
		fromName:    fromName,
		parentEmail: parentEmail,
		enabled:     true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// PlayTimeRedeemed tells the parent that netherite was cashed in for play
// minutes, with the running lifetime total.
func (s *EmailService) PlayTimeRedeemed(ctx context.Context, minutes, totalMinutes int) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): %d play minutes redeemed", minutes)
		return nil
	}

	subject := fmt.Sprintf("VocabVille: %d minutes of play time redeemed", minutes)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #3e8948; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Play Time Redeemed</h1>
		</div>
		<div class="content">
			<p>Hi,</p>
			<p>Your child just traded their hard-earned netherite for <strong>%d minutes</strong> of play time.</p>
			<p>Lifetime play time earned so far: <strong>%d minutes</strong>.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from VocabVille. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, minutes, totalMinutes)

	textBody := fmt.Sprintf(`Hi,

Your child just traded their hard-earned netherite for %d minutes of play time.

Lifetime play time earned so far: %d minutes.

---
This is an automated email from VocabVille. Please do not reply.
`, minutes, totalMinutes)

	return s.sendEmail(ctx, s.parentEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
