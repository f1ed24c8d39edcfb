package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gallery_admin/internal/client/galleryapi"
	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/lib/jwt"
	"gallery_admin/internal/lib/logger/sl"
	"gallery_admin/internal/storage"

	"github.com/google/uuid"
)

const LoginFailedMessage = "Login failed. Please try again."

var ErrUnauthenticated = errors.New("not logged in")

// LoginError carries the message shown to the user next to the login form.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

type Auth struct {
	log        *slog.Logger
	api        LoginAPI
	sessions   SessionStore
	sessionTTL time.Duration
	now        func() time.Time
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.3 --all
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*models.UpstreamCredentials, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, session models.ConsoleSession, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (models.ConsoleSession, error)
	DeleteSession(ctx context.Context, id string) error
}

func New(log *slog.Logger, api LoginAPI, sessions SessionStore, sessionTTL time.Duration) *Auth {
	return &Auth{
		log:        log,
		api:        api,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Login checks the credentials against the gallery API and opens a console
// session holding the upstream cookies.
func (a *Auth) Login(ctx context.Context, email, password string) (*models.ConsoleSession, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	creds, err := a.api.Login(ctx, email, password)
	if err != nil {
		msg := LoginFailedMessage

		var apiErr *galleryapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}

		log.Warn("login rejected", sl.Err(err))

		return nil, &LoginError{Message: msg, Err: err}
	}

	now := a.now()
	ttl := a.sessionTTL

	if creds.AccessToken != "" {
		exp, err := jwt.ExpiresAt(creds.AccessToken)
		if err != nil {
			log.Debug("access token has no usable expiry", sl.Err(err))
		} else if left := exp.Sub(now); left > 0 && left < ttl {
			ttl = left
		}
	}

	session := models.ConsoleSession{
		ID:        uuid.NewString(),
		Email:     email,
		Cookies:   models.SessionCookies(creds.Cookies),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := a.sessions.SaveSession(ctx, session, ttl); err != nil {
		log.Error("failed to save session", sl.Err(err))

		return nil, &LoginError{Message: LoginFailedMessage, Err: fmt.Errorf("%s: %w", op, err)}
	}

	log.Info("user logged in successfully", slog.String("session_id", session.ID))

	return &session, nil
}

// Session returns the stored session or ErrUnauthenticated.
func (a *Auth) Session(ctx context.Context, id string) (models.ConsoleSession, error) {
	const op = "auth.Session"

	if id == "" {
		return models.ConsoleSession{}, ErrUnauthenticated
	}

	session, err := a.sessions.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return models.ConsoleSession{}, ErrUnauthenticated
		}

		a.log.Error("failed to load session", slog.String("op", op), sl.Err(err))

		return models.ConsoleSession{}, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (a *Auth) Logout(ctx context.Context, id string) error {
	const op = "auth.Logout"

	if err := a.sessions.DeleteSession(ctx, id); err != nil {
		a.log.Error("failed to delete session", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("user logged out", slog.String("op", op), slog.String("session_id", id))

	return nil
}
