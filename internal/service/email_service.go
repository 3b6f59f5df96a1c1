package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"sluchapp/internal/models"
)

// sesClient is the part of the SES API used to send mail
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesClient
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that skips every send.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service: region=%s from=%s", awsRegion, fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return newEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, debug), nil
}

func newEmailServiceWithClient(client sesClient, fromEmail, fromName, appBaseURL string, debug bool) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s != nil && s.enabled
}

// SendResultSummary emails the user a summary of a saved quiz result
func (s *EmailService) SendResultSummary(ctx context.Context, toEmail, toName string, result models.SavedResult) error {
	if !s.IsEnabled() {
		return nil
	}
	if toEmail == "" {
		log.Printf("Skipping result summary for user %d: no email address", result.UserID)
		return nil
	}

	category := result.Category.Label()
	if category == "" {
		category = string(result.Category)
	}
	percent := result.Accuracy * 100

	subject := fmt.Sprintf("SłuchApp: %s %d/%d", category, result.CorrectAnswers, result.TotalQuestions)

	textBody := fmt.Sprintf(`Cześć %s,

Twój wynik z ćwiczenia "%s" (poziom: %s):

Poprawne odpowiedzi: %d/%d
Dokładność: %.0f%%
Czas: %.1f s

Zobacz historię ćwiczeń: %s

---
Wiadomość wysłana automatycznie przez SłuchApp.
`, toName, category, result.Level, result.CorrectAnswers, result.TotalQuestions, percent, result.DurationSeconds, s.appBaseURL)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<p>Cześć %s,</p>
	<p>Twój wynik z ćwiczenia <strong>%s</strong> (poziom: %s):</p>
	<table>
		<tr><td>Poprawne odpowiedzi</td><td><strong>%d/%d</strong></td></tr>
		<tr><td>Dokładność</td><td>%.0f%%</td></tr>
		<tr><td>Czas</td><td>%.1f s</td></tr>
	</table>
	<p><a href="%s">Zobacz historię ćwiczeń</a></p>
	<p style="font-size: 12px; color: #666;">Wiadomość wysłana automatycznie przez SłuchApp.</p>
</body>
</html>
`, html.EscapeString(toName), html.EscapeString(category), html.EscapeString(result.Level),
		result.CorrectAnswers, result.TotalQuestions, percent, result.DurationSeconds, html.EscapeString(s.appBaseURL))

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
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

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message ID: %s", *result.MessageId)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
