package repository

import (
	"context"
	"fmt"

	redisapp "gallery_admin/internal/storage/redis"
)

type Repository struct {
	redis    *redisapp.Client
	Sessions SessionRepository
}

func NewRepository(ctx context.Context, addr, password string, db int) (*Repository, error) {
	client := redisapp.NewClient(addr, password, db)

	if err := client.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Repository{
		redis:    client,
		Sessions: NewRedisSessionRepo(client),
	}, nil
}

func (r *Repository) Close() error {
	return r.redis.Close()
}
