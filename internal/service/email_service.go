package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"dominionstats/internal/stats"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends statistics digests via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. With an empty fromEmail the
// service is created disabled and every send is skipped.
func NewEmailService(awsRegion, fromEmail, fromName string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendStatsDigest mails the player statistics table to each recipient
func (s *EmailService) SendStatsDigest(ctx context.Context, recipients []string, result stats.Result) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): stats digest to %d recipients", len(recipients))
		return nil
	}

	subject, htmlBody, textBody := buildStatsDigest(result, time.Now())
	for _, to := range recipients {
		if err := s.sendEmail(ctx, to, subject, htmlBody, textBody); err != nil {
			return err
		}
	}
	return nil
}

func buildStatsDigest(result stats.Result, now time.Time) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Dominion player statistics - %s", now.Format("2 Jan 2006"))

	var text strings.Builder
	var rows strings.Builder

	text.WriteString("Player statistics\n\n")
	if len(result.Players) == 0 {
		text.WriteString("No games recorded yet.\n")
	}

	for _, ps := range result.Sorted() {
		fmt.Fprintf(&text, "%s: %d games, %d wins (%.2f%%), average %.2f, best %d\n",
			ps.Player, ps.GamesPlayed, ps.Wins, ps.WinRate, ps.AverageScore, ps.HighScore)
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%.2f%%</td><td>%.2f</td><td>%d</td></tr>\n",
			html.EscapeString(ps.Player), ps.GamesPlayed, ps.Wins, ps.WinRate, ps.AverageScore, ps.HighScore)
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; color: #333; }
		table { border-collapse: collapse; }
		th, td { padding: 6px 12px; border-bottom: 1px solid #ddd; text-align: left; }
	</style>
</head>
<body>
	<h1>Player statistics</h1>
	<table>
		<tr><th>Player</th><th>Games</th><th>Wins</th><th>Win rate</th><th>Average</th><th>High score</th></tr>
%s	</table>
</body>
</html>`, rows.String())

	return subject, htmlBody, text.String()
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] sendEmail: from=%s, to=%s, subject=%s", fromAddress, toEmail, subject)
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
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
