package repository

import (
	"context"

	"airtrip-service/internal/domain/entity"
)

// SessionRepository stores search sessions between requests
type SessionRepository interface {
	// Load returns ErrNotFound when the session is absent or expired
	Load(ctx context.Context, id string) (*entity.SearchSession, error)
	Save(ctx context.Context, session *entity.SearchSession) error
}
