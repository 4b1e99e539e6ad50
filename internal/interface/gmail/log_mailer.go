package gmail

import (
	"context"

	"airtrip-service/internal/domain/repository"
	"airtrip-service/pkg/logger"
)

// LogMailRepository writes reset links to the service log instead of sending them.
// Used when no Gmail credentials are configured.
type LogMailRepository struct {
	logger logger.Logger
}

// NewLogMailRepository creates a new log-only mail sender
func NewLogMailRepository(logger logger.Logger) repository.MailRepository {
	return &LogMailRepository{
		logger: logger,
	}
}

// SendPasswordReset logs the reset link
func (r *LogMailRepository) SendPasswordReset(ctx context.Context, email, link string) error {
	r.logger.Warn("Gmail not configured, password reset link logged only", "email", email, "link", link)
	return nil
}
