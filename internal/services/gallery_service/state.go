package services

import (
	"errors"
	"fmt"

	"gallery_admin/internal/domain/models"
)

const DeleteFailedNotice = "Failed to delete item. Please try again."

var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownPlace     = errors.New("unknown place")
	ErrDeleteInFlight   = errors.New("another delete is in progress")
	ErrNotConfirmed     = errors.New("delete not confirmed")
	ErrItemNotFound     = errors.New("item is not displayed")
	ErrAPIPanic         = errors.New("gallery api panicked")
)

// DeleteError is returned when the gallery API refuses or fails a delete.
type DeleteError struct {
	ID  int64
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete item %d: %v", e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// Notice is the message shown to the user.
func (e *DeleteError) Notice() string {
	return DeleteFailedNotice
}

// State is everything the gallery screen shows. Transition functions take a
// State by value and return the next one plus the effect to run, if any.
type State struct {
	Filter     models.FilterState
	Page       int
	PageSize   int
	TotalPages int
	Items      []models.GalleryItem

	Loading        bool
	// Navigating is set while the outstanding fetch came from page
	// navigation, so a re-dispatch keeps its scroll-to-top.
	Navigating     bool
	DeleteInFlight bool
	DeletingID     int64

	// Generation is bumped on every fetch dispatch. Only the completion
	// carrying the current generation is applied.
	Generation uint64

	ScrollTop   bool
	Notice      string
	ZoomedImage string
}

type EffectKind int

const (
	EffectFetch EffectKind = iota + 1
	EffectDelete
)

func (k EffectKind) String() string {
	switch k {
	case EffectFetch:
		return "fetch"
	case EffectDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Effect is a request the controller must send to the gallery API.
type Effect struct {
	Kind       EffectKind
	Generation uint64
	Query      models.GalleryQuery
	ItemID     int64
	// Navigate marks fetches started by page navigation.
	Navigate bool
}

// FetchOutcome reports how a fetch completion was applied.
type FetchOutcome int

const (
	FetchApplied FetchOutcome = iota + 1
	FetchFailed
	FetchStale
)

func Initial(pageSize int) State {
	return State{
		Filter:     models.DefaultFilter(),
		Page:       1,
		PageSize:   pageSize,
		TotalPages: 1,
		Items:      []models.GalleryItem{},
	}
}

func dispatchFetch(s State, page int, navigate bool) (State, *Effect) {
	s.Generation++
	s.Loading = true
	s.Navigating = navigate
	s.Page = page

	return s, &Effect{
		Kind:       EffectFetch,
		Generation: s.Generation,
		Query:      s.Filter.Query(page, s.PageSize),
		Navigate:   navigate,
	}
}

// Load fetches the current page unless a fetch is already outstanding.
func Load(s State) (State, *Effect) {
	if s.Loading {
		return s, nil
	}

	return dispatchFetch(s, s.Page, false)
}

func validateFilter(f models.FilterState) error {
	if f.Character != models.AllCharacters && !models.IsCharacter(f.Character) {
		return fmt.Errorf("%w: %q", ErrUnknownCharacter, f.Character)
	}

	if f.Place != models.AllPlaces && !models.IsPlace(f.Place) {
		return fmt.Errorf("%w: %q", ErrUnknownPlace, f.Place)
	}

	return nil
}

// ChangeFilter applies a new filter: page goes back to 1, displayed items are
// dropped and page 1 is fetched. A fetch still outstanding is superseded.
func ChangeFilter(s State, f models.FilterState) (State, *Effect, error) {
	if err := validateFilter(f); err != nil {
		return s, nil, err
	}

	if f == s.Filter {
		return s, nil, nil
	}

	s.Filter = f
	s.Items = []models.GalleryItem{}
	s.ZoomedImage = ""
	s.ScrollTop = false

	next, eff := dispatchFetch(s, 1, false)

	return next, eff, nil
}

// GoToPage navigates to page n. It does nothing when n is out of range, is
// the current page, or a fetch is outstanding.
func GoToPage(s State, n int) (State, *Effect) {
	if n < 1 || n > s.TotalPages || n == s.Page || s.Loading {
		return s, nil
	}

	return dispatchFetch(s, n, true)
}

// CompleteFetch applies the result of req. Stale results are ignored. A
// failure leaves an empty list and a single page.
func CompleteFetch(s State, req Effect, page *models.GalleryPage, err error) (State, *Effect, FetchOutcome) {
	if req.Generation != s.Generation {
		return s, nil, FetchStale
	}

	s.Loading = false

	if err != nil || page == nil {
		s.Items = []models.GalleryItem{}
		s.TotalPages = 1
		return s, nil, FetchFailed
	}

	items := make([]models.GalleryItem, len(page.Items))
	copy(items, page.Items)

	s.Items = items
	s.TotalPages = max(page.TotalPages, 1)

	if s.Page > s.TotalPages {
		next, eff := dispatchFetch(s, s.TotalPages, req.Navigate)
		return next, eff, FetchApplied
	}

	if req.Navigate {
		s.ScrollTop = true
	}

	return s, nil, FetchApplied
}

func indexOf(items []models.GalleryItem, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}

	return -1
}

// BeginDelete starts deleting id. Only one delete may be outstanding.
func BeginDelete(s State, id int64, confirmed bool) (State, *Effect, error) {
	if s.DeleteInFlight {
		return s, nil, ErrDeleteInFlight
	}

	if !confirmed {
		return s, nil, ErrNotConfirmed
	}

	if indexOf(s.Items, id) < 0 {
		return s, nil, ErrItemNotFound
	}

	s.DeleteInFlight = true
	s.DeletingID = id
	s.Notice = ""

	return s, &Effect{
		Kind:       EffectDelete,
		Generation: s.Generation,
		ItemID:     id,
	}, nil
}

// CompleteDelete applies the API answer to a delete. On success the item is
// removed and, when the page became empty, the previous page (or page 1) is
// fetched. A fetch outstanding at this point may predate the delete, so the
// current page is fetched again under a new generation.
func CompleteDelete(s State, req Effect, err error) (State, *Effect) {
	s.DeleteInFlight = false
	s.DeletingID = 0

	if err != nil {
		s.Notice = DeleteFailedNotice
		return s, nil
	}

	if i := indexOf(s.Items, req.ItemID); i >= 0 {
		items := make([]models.GalleryItem, 0, len(s.Items)-1)
		items = append(items, s.Items[:i]...)
		s.Items = append(items, s.Items[i+1:]...)
	}

	s.ZoomedImage = ""

	switch {
	case s.Loading:
		return dispatchFetch(s, s.Page, s.Navigating)
	case len(s.Items) == 0 && s.Page > 1:
		return dispatchFetch(s, s.Page-1, false)
	case len(s.Items) == 0:
		return dispatchFetch(s, 1, false)
	}

	return s, nil
}

// OpenZoom shows the full-size image of a displayed item.
func OpenZoom(s State, id int64, imageURL func(ref string) string) (State, error) {
	i := indexOf(s.Items, id)
	if i < 0 {
		return s, ErrItemNotFound
	}

	s.ZoomedImage = imageURL(s.Items[i].ImageURL)

	return s, nil
}

func CloseZoom(s State) State {
	s.ZoomedImage = ""
	return s
}
