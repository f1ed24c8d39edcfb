package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/lib/logger/sl"
	"gallery_admin/internal/metrics"
)

// GalleryAPI is the gallery listing collaborator.
type GalleryAPI interface {
	ListGallery(ctx context.Context, q models.GalleryQuery) (*models.GalleryPage, error)
	DeleteItem(ctx context.Context, id int64) error
}

// View is a snapshot of the gallery screen.
type View struct {
	Filter         models.FilterState   `json:"filter"`
	Page           int                  `json:"page"`
	PageSize       int                  `json:"page_size"`
	TotalPages     int                  `json:"total_pages"`
	Items          []models.GalleryItem `json:"items"`
	Loading        bool                 `json:"loading"`
	DeleteInFlight bool                 `json:"delete_in_flight"`
	DeletingID     int64                `json:"deleting_id,omitempty"`
	Pager          []PagerEntry         `json:"pager"`
	HasPrev        bool                 `json:"has_prev"`
	HasNext        bool                 `json:"has_next"`
	ShowPager      bool                 `json:"show_pager"`
	ShowQuickJump  bool                 `json:"show_quick_jump"`
	ShowLoading    bool                 `json:"show_loading"`
	Empty          bool                 `json:"empty"`
	ScrollTop      bool                 `json:"scroll_top"`
	Notice         string               `json:"notice,omitempty"`
	ZoomedImage    string               `json:"zoomed_image,omitempty"`
}

// Controller owns the gallery State of one console session and runs the
// effects its transitions produce.
type Controller struct {
	log      *slog.Logger
	api      GalleryAPI
	imageURL func(ref string) string

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	cancelGen uint64
}

func NewController(log *slog.Logger, api GalleryAPI, pageSize int, imageURL func(ref string) string) *Controller {
	return &Controller{
		log:      log,
		api:      api,
		imageURL: imageURL,
		state:    Initial(pageSize),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Items = append([]models.GalleryItem(nil), c.state.Items...)

	return s
}

// View returns the screen snapshot and clears the one-shot ScrollTop and
// Notice fields.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	c.state.ScrollTop = false
	c.state.Notice = ""

	return View{
		Filter:         s.Filter,
		Page:           s.Page,
		PageSize:       s.PageSize,
		TotalPages:     s.TotalPages,
		Items:          append([]models.GalleryItem{}, s.Items...),
		Loading:        s.Loading,
		DeleteInFlight: s.DeleteInFlight,
		DeletingID:     s.DeletingID,
		Pager:          PagerWindow(s.Page, s.TotalPages),
		HasPrev:        s.Page > 1 && !s.Loading,
		HasNext:        s.Page < s.TotalPages && !s.Loading,
		ShowPager:      s.TotalPages > 1,
		ShowQuickJump:  s.TotalPages > quickJumpPages,
		ShowLoading:    s.Loading && s.Page == 1,
		Empty:          len(s.Items) == 0 && !s.Loading,
		ScrollTop:      s.ScrollTop,
		Notice:         s.Notice,
		ZoomedImage:    s.ZoomedImage,
	}
}

// Load fetches the current page once, for a freshly created controller.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	if c.state.Generation > 0 {
		c.mu.Unlock()
		return
	}
	next, eff := Load(c.state)
	c.state = next
	fctx := c.track(ctx, eff)
	c.mu.Unlock()

	c.run(ctx, fctx, eff)
}

// Refresh re-fetches the current page unless a fetch is outstanding.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	next, eff := Load(c.state)
	c.state = next
	fctx := c.track(ctx, eff)
	c.mu.Unlock()

	c.run(ctx, fctx, eff)
}

// SetFilter switches filters and blocks until page 1 of the new selection is
// loaded. Fetch failures are logged, not returned.
func (c *Controller) SetFilter(ctx context.Context, f models.FilterState) error {
	return c.changeFilter(ctx, func(models.FilterState) models.FilterState { return f })
}

// UpdateFilter is SetFilter for partial input: an empty character or place
// keeps the current selection. The merge happens under the controller lock.
func (c *Controller) UpdateFilter(ctx context.Context, character, place string) error {
	return c.changeFilter(ctx, func(cur models.FilterState) models.FilterState {
		if character != "" {
			cur.Character = character
		}
		if place != "" {
			cur.Place = place
		}
		return cur
	})
}

func (c *Controller) changeFilter(ctx context.Context, merge func(models.FilterState) models.FilterState) error {
	const op = "service.GalleryController.SetFilter"

	c.mu.Lock()
	f := merge(c.state.Filter)

	log := c.log.With(
		slog.String("op", op),
		slog.String("character", f.Character),
		slog.String("place", f.Place),
	)

	next, eff, err := ChangeFilter(c.state, f)
	if err != nil {
		c.mu.Unlock()
		log.Warn("rejected filter", sl.Err(err))
		return err
	}
	c.state = next
	fctx := c.track(ctx, eff)
	c.mu.Unlock()

	if eff != nil {
		log.Info("filter changed")
	}

	c.run(ctx, fctx, eff)

	return nil
}

// GoToPage navigates to page n and reports whether a fetch was dispatched.
func (c *Controller) GoToPage(ctx context.Context, n int) bool {
	const op = "service.GalleryController.GoToPage"

	c.mu.Lock()
	next, eff := GoToPage(c.state, n)
	c.state = next
	fctx := c.track(ctx, eff)
	c.mu.Unlock()

	if eff == nil {
		c.log.Debug("navigation ignored", slog.String("op", op), slog.Int("page", n))
		return false
	}

	c.run(ctx, fctx, eff)

	return true
}

// Delete removes item id after the user confirmed it. The returned error is
// one of the sentinel rejections or a *DeleteError from the API.
func (c *Controller) Delete(ctx context.Context, id int64, confirmed bool) error {
	const op = "service.GalleryController.Delete"

	log := c.log.With(
		slog.String("op", op),
		slog.Int64("item_id", id),
	)

	c.mu.Lock()
	next, eff, err := BeginDelete(c.state, id, confirmed)
	if err != nil {
		c.mu.Unlock()
		log.Info("delete rejected", sl.Err(err))
		return err
	}
	c.state = next
	c.mu.Unlock()

	log.Info("deleting item")

	apiErr := c.deleteItem(ctx, eff.ItemID)

	c.mu.Lock()
	next, follow := CompleteDelete(c.state, *eff, apiErr)
	c.state = next
	fctx := c.track(ctx, follow)
	c.mu.Unlock()

	if apiErr != nil {
		log.Error("failed to delete item", sl.Err(apiErr))
		return &DeleteError{ID: id, Err: apiErr}
	}

	log.Info("item deleted")

	c.run(ctx, fctx, follow)

	return nil
}

func (c *Controller) OpenZoom(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := OpenZoom(c.state, id, c.imageURL)
	if err != nil {
		return err
	}
	c.state = next

	return nil
}

func (c *Controller) CloseZoom() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = CloseZoom(c.state)
}

// track cancels the fetch eff supersedes and returns the context eff runs
// under. Callers hold c.mu.
func (c *Controller) track(ctx context.Context, eff *Effect) context.Context {
	if eff == nil || eff.Kind != EffectFetch {
		return ctx
	}

	if c.cancel != nil {
		c.cancel()
	}

	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.cancelGen = eff.Generation

	return fctx
}

// release frees the context of a finished fetch. Callers hold c.mu.
func (c *Controller) release(gen uint64) {
	if c.cancel != nil && c.cancelGen == gen {
		c.cancel()
		c.cancel = nil
	}
}

// run executes fetch effects until the state stops asking for more. Each
// fetch runs under its own tracked context derived from parent.
func (c *Controller) run(parent, ctx context.Context, eff *Effect) {
	const op = "service.GalleryController.fetch"

	for eff != nil {
		log := c.log.With(
			slog.String("op", op),
			slog.Int("page", eff.Query.Page),
			slog.Uint64("generation", eff.Generation),
		)

		page, err := c.listGallery(ctx, eff.Query)

		c.mu.Lock()
		next, follow, outcome := CompleteFetch(c.state, *eff, page, err)
		c.state = next
		if outcome != FetchStale {
			c.release(eff.Generation)
		}
		fctx := c.track(parent, follow)
		c.mu.Unlock()

		switch outcome {
		case FetchStale:
			metrics.StaleResponsesTotal.Inc()
			log.Debug("dropped stale gallery response")
		case FetchFailed:
			if err == nil {
				err = errors.New("empty gallery response")
			}
			log.Error("failed to fetch gallery data", sl.Err(err))
		case FetchApplied:
			log.Debug("gallery page loaded", slog.Int("items", len(next.Items)), slog.Int("total_pages", next.TotalPages))
		}

		eff = follow
		ctx = fctx
	}
}

// listGallery turns a panicking collaborator into a failed fetch so the
// loading flag is always released.
func (c *Controller) listGallery(ctx context.Context, q models.GalleryQuery) (page *models.GalleryPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("%w: list gallery: %v", ErrAPIPanic, r)
		}
	}()

	return c.api.ListGallery(ctx, q)
}

func (c *Controller) deleteItem(ctx context.Context, id int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: delete item: %v", ErrAPIPanic, r)
		}
	}()

	return c.api.DeleteItem(ctx, id)
}
