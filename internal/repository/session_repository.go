package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/storage"
	redisapp "gallery_admin/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

// SaveSession stores the session for ttl.
func (r *RedisSessionRepo) SaveSession(ctx context.Context, session models.ConsoleSession, ttl time.Duration) error {
	const op = "repository.RedisSessionRepo.SaveSession"

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisSessionRepo) GetSession(ctx context.Context, id string) (models.ConsoleSession, error) {
	const op = "repository.RedisSessionRepo.GetSession"

	val, err := r.Client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ConsoleSession{}, fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
		}

		return models.ConsoleSession{}, fmt.Errorf("%s: %w", op, err)
	}

	var session models.ConsoleSession
	if err := json.Unmarshal(val, &session); err != nil {
		return models.ConsoleSession{}, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (r *RedisSessionRepo) DeleteSession(ctx context.Context, id string) error {
	const op = "repository.RedisSessionRepo.DeleteSession"

	if err := r.Client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func sessionKey(id string) string {
	return "console:session:" + id
}
