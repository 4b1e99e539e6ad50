package repository

import (
	"context"

	"airtrip-service/internal/domain/entity"
)

// CredentialRepository defines the interface for account storage
type CredentialRepository interface {
	// FindByEmail returns ErrNotFound when no account matches
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)
	Save(ctx context.Context, credential *entity.Credential) error
}
