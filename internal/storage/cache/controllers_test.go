package cache

import (
	"context"
	"testing"
	"time"

	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/lib/logger/handlers/slogdiscard"
	services "gallery_admin/internal/services/gallery_service"

	"github.com/stretchr/testify/assert"
)

type nopAPI struct{}

func (nopAPI) ListGallery(context.Context, models.GalleryQuery) (*models.GalleryPage, error) {
	return &models.GalleryPage{TotalPages: 1}, nil
}

func (nopAPI) DeleteItem(context.Context, int64) error { return nil }

func newRegistry(ttl time.Duration, created *[]string) *Controllers {
	return NewControllers(ttl, func(session models.ConsoleSession) *services.Controller {
		*created = append(*created, session.ID)
		return services.NewController(slogdiscard.NewDiscardLogger(), nopAPI{}, 25, func(ref string) string { return ref })
	})
}

func TestControllers_GetCreatesOncePerSession(t *testing.T) {
	var created []string
	r := newRegistry(time.Minute, &created)

	a, fresh := r.Get(models.ConsoleSession{ID: "s1"})
	assert.True(t, fresh)

	again, fresh := r.Get(models.ConsoleSession{ID: "s1"})
	assert.False(t, fresh)
	assert.Same(t, a, again)

	b, _ := r.Get(models.ConsoleSession{ID: "s2"})
	assert.NotSame(t, a, b)

	assert.Equal(t, []string{"s1", "s2"}, created)
	assert.Equal(t, 2, r.Len())
}

func TestControllers_Forget(t *testing.T) {
	var created []string
	r := newRegistry(time.Minute, &created)

	first, _ := r.Get(models.ConsoleSession{ID: "s1"})
	r.Forget("s1")

	second, fresh := r.Get(models.ConsoleSession{ID: "s1"})
	assert.True(t, fresh)
	assert.NotSame(t, first, second)
}

func TestControllers_IdleExpiry(t *testing.T) {
	var created []string
	r := newRegistry(50*time.Millisecond, &created)

	first, _ := r.Get(models.ConsoleSession{ID: "s1"})
	time.Sleep(120 * time.Millisecond)

	second, fresh := r.Get(models.ConsoleSession{ID: "s1"})
	assert.True(t, fresh)
	assert.NotSame(t, first, second)
}
