package repository

import "context"

// MailRepository delivers account emails
type MailRepository interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}
