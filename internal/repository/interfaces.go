package repository

import (
	"context"
	"time"

	"gallery_admin/internal/domain/models"
)

type SessionRepository interface {
	SaveSession(ctx context.Context, session models.ConsoleSession, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (models.ConsoleSession, error)
	DeleteSession(ctx context.Context, id string) error
}
