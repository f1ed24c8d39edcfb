package cache

import (
	"sync"
	"time"

	"gallery_admin/internal/domain/models"
	services "gallery_admin/internal/services/gallery_service"

	gocache "github.com/patrickmn/go-cache"
)

// Controllers keeps one gallery controller per console session. Entries
// expire after idleTTL without access.
type Controllers struct {
	mu      sync.Mutex
	c       *gocache.Cache
	idleTTL time.Duration
	factory func(session models.ConsoleSession) *services.Controller
}

func NewControllers(idleTTL time.Duration, factory func(session models.ConsoleSession) *services.Controller) *Controllers {
	return &Controllers{
		c:       gocache.New(idleTTL, idleTTL/2+time.Second),
		idleTTL: idleTTL,
		factory: factory,
	}
}

// Get returns the session's controller, creating it on first use. The second
// result reports whether it was just created.
func (r *Controllers) Get(session models.ConsoleSession) (*services.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID := session.ID

	if v, ok := r.c.Get(sessionID); ok {
		ctrl := v.(*services.Controller)
		// refresh the idle deadline
		r.c.Set(sessionID, ctrl, r.idleTTL)
		return ctrl, false
	}

	ctrl := r.factory(session)
	r.c.Set(sessionID, ctrl, r.idleTTL)

	return ctrl, true
}

func (r *Controllers) Forget(sessionID string) {
	r.c.Delete(sessionID)
}

func (r *Controllers) Len() int {
	return r.c.ItemCount()
}
