package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
	"airtrip-service/templates"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ResetLinkValidity is how long a password reset link stays usable
const ResetLinkValidity = 10 * time.Minute

// GmailMailRepository sends account emails through the Gmail API
type GmailMailRepository struct {
	gmailService *gmail.Service
	sender       string
	logger       logger.Logger
}

// NewGmailMailRepository creates a new Gmail mail sender. Pass option.WithTokenSource
// for production use.
func NewGmailMailRepository(ctx context.Context, sender string, logger logger.Logger, opts ...option.ClientOption) (repository.MailRepository, error) {
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailMailRepository{
		gmailService: service,
		sender:       sender,
		logger:       logger,
	}, nil
}

// SendPasswordReset mails the reset link to the account owner
func (s *GmailMailRepository) SendPasswordReset(ctx context.Context, email, link string) error {
	body, err := templates.RenderPasswordReset(email, link, ResetLinkValidity)
	if err != nil {
		return err
	}

	raw := buildMessage(s.sender, email, templates.PasswordResetSubject, body)
	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	sent, err := s.gmailService.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		s.logger.Error("Failed to send password reset email", "email", email, "error", err)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	s.logger.Info("Password reset email sent", "email", email, "messageId", sent.Id)
	return nil
}

func buildMessage(from, to, subject, body string) string {
	var sb strings.Builder
	if from != "" && from != "me" {
		sb.WriteString("From: " + from + "\r\n")
	}
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return sb.String()
}
