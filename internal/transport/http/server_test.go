package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	httpapp "gallery_admin/internal/app/http"
	"gallery_admin/internal/client/galleryapi"
	"gallery_admin/internal/config"
	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/lib/logger/handlers/slogdiscard"
	"gallery_admin/internal/services/auth"
	services "gallery_admin/internal/services/gallery_service"
	"gallery_admin/internal/storage/cache"
	httprouters "gallery_admin/internal/transport/http"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testEmail    = "admin@example.com"
	testPassword = "secret-password"
	testSession  = "sid-1"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Login(ctx context.Context, email, password string) (*models.ConsoleSession, error) {
	args := m.Called(ctx, email, password)
	if s, ok := args.Get(0).(*models.ConsoleSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuth) Session(ctx context.Context, id string) (models.ConsoleSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ConsoleSession), args.Error(1)
}

func (m *MockAuth) Logout(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeGallery is an in-memory gallery API.
type fakeGallery struct {
	mu         sync.Mutex
	items      []models.GalleryItem
	failDelete bool
	queries    []url.Values
	deleted    []string
}

func (f *fakeGallery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/gallery":
		f.queries = append(f.queries, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":         f.items,
			"total_page":   1,
			"current_page": 1,
			"total_items":  len(f.items),
		})
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/gallery/"):
		if f.failDelete {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/gallery/")
		f.deleted = append(f.deleted, id)
		kept := f.items[:0]
		for _, it := range f.items {
			if fmt.Sprint(it.ID) != id {
				kept = append(kept, it)
			}
		}
		f.items = kept
		w.WriteHeader(http.StatusOK)
	case r.URL.Path == "/images/ok.png":
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGallery) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

type ServerTestSuite struct {
	suite.Suite
	auth     *MockAuth
	gallery  *fakeGallery
	upstream *httptest.Server
	server   *httptest.Server
	client   *http.Client
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	log := slogdiscard.NewDiscardLogger()

	s.gallery = &fakeGallery{items: []models.GalleryItem{
		{ID: 1, ImageURL: "ok.png", Character: "dj", Place: "Public Park", Caption: "first caption"},
		{ID: 2, ImageURL: "missing.png", Character: "artist", Place: "Nature Beauty", Caption: "second caption"},
		{ID: 3, ImageURL: "ok.png", Character: "daddy", Place: "Public Library", Caption: "third caption"},
	}}
	s.upstream = httptest.NewServer(s.gallery)

	api := galleryapi.New(s.upstream.URL, time.Second)

	controllers := cache.NewControllers(time.Minute, func(session models.ConsoleSession) *services.Controller {
		return services.NewController(log, api.WithCookies(session.HTTPCookies()), 25, httprouters.ImageSrc)
	})

	s.auth = new(MockAuth)
	s.auth.On("Session", mock.Anything, "").Return(models.ConsoleSession{}, auth.ErrUnauthenticated).Maybe()

	routers := httprouters.NewRouter(log, s.auth, controllers, api)

	server, err := httpapp.New(log, config.HTTPConfig{}, config.SessionConfig{Secret: "test-secret", TTL: time.Hour}, routers)
	s.Require().NoError(err)
	server.BuildRouters()

	s.server = httptest.NewServer(server.Handler())

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)

	s.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
	s.upstream.Close()
}

func (s *ServerTestSuite) login() {
	s.auth.On("Login", mock.Anything, testEmail, testPassword).Return(&models.ConsoleSession{
		ID:        testSession,
		Email:     testEmail,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	s.auth.On("Session", mock.Anything, testSession).Return(models.ConsoleSession{
		ID:    testSession,
		Email: testEmail,
	}, nil).Maybe()

	resp := s.postForm("/login", url.Values{"email": {testEmail}, "password": {testPassword}}, false)
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)
	s.Require().Equal("/admin", resp.Header.Get("Location"))
}

func (s *ServerTestSuite) do(method, path string, form url.Values, asJSON bool) *http.Response {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err)

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func (s *ServerTestSuite) get(path string, asJSON bool) *http.Response {
	return s.do(http.MethodGet, path, nil, asJSON)
}

func (s *ServerTestSuite) postForm(path string, form url.Values, asJSON bool) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	return s.do(http.MethodPost, path, form, asJSON)
}

func (s *ServerTestSuite) readBody(resp *http.Response) string {
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(b)
}

type stateEnvelope struct {
	Status string        `json:"status"`
	Data   services.View `json:"data"`
}

func (s *ServerTestSuite) state() services.View {
	resp := s.get("/admin/state", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var env stateEnvelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))

	return env.Data
}

func (s *ServerTestSuite) TestHealth() {
	resp := s.get("/health", false)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.readBody(resp), `"ok"`)
}

func (s *ServerTestSuite) TestAdminRequiresSession() {
	resp := s.get("/admin", false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	resp = s.get("/admin/state", true)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ServerTestSuite) TestLoginValidation() {
	resp := s.postForm("/login", url.Values{"email": {"not-an-email"}, "password": {""}}, false)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(s.readBody(resp), "Enter a valid email and password.")
	s.auth.AssertNotCalled(s.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestLoginRejected() {
	s.auth.On("Login", mock.Anything, testEmail, "wrong-password").
		Return(nil, &auth.LoginError{Message: "Invalid password"}).Once()

	resp := s.postForm("/login", url.Values{"email": {testEmail}, "password": {"wrong-password"}}, false)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	body := s.readBody(resp)
	s.Contains(body, "Invalid password")
	s.Contains(body, "alert(")
}

func (s *ServerTestSuite) TestLoginAndGallery() {
	s.login()

	resp := s.get("/admin", false)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body := s.readBody(resp)
	s.Contains(body, "first caption")
	s.Contains(body, "third caption")
	s.Contains(body, "A DJ")
	s.Contains(body, testEmail)

	q := s.gallery.lastQuery()
	s.Equal("1", q.Get("page"))
	s.Equal("25", q.Get("limit"))
	s.NotContains(q, "character")
	s.NotContains(q, "place")

	resp = s.get("/", false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/admin", resp.Header.Get("Location"))
}

func (s *ServerTestSuite) TestSetFilter() {
	s.login()
	s.state()

	resp := s.postForm("/admin/filter", url.Values{"character": {"unknown"}}, true)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.postForm("/admin/filter", url.Values{"character": {"dj"}, "place": {"public-park"}}, false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)

	q := s.gallery.lastQuery()
	s.Equal("dj", q.Get("character"))
	s.Equal("Public Park", q.Get("place"))
	s.Equal("1", q.Get("page"))

	view := s.state()
	s.Equal(models.FilterState{Character: "dj", Place: "public-park"}, view.Filter)
	s.Equal(1, view.Page)
}

func (s *ServerTestSuite) TestGoToPageOutOfRangeIsIgnored() {
	s.login()
	s.state()

	for _, page := range []string{"0", "-3", "5"} {
		resp := s.postForm("/admin/page", url.Values{"page": {page}}, true)
		s.Equal(http.StatusOK, resp.StatusCode, page)
	}

	resp := s.postForm("/admin/page", url.Values{"page": {""}}, false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/admin", resp.Header.Get("Location"))

	resp = s.postForm("/admin/page", url.Values{"page": {"abc"}}, false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/admin", resp.Header.Get("Location"))

	resp = s.postForm("/admin/page", url.Values{"page": {"abc"}}, true)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.Equal(1, s.state().Page)
}

func (s *ServerTestSuite) TestSetFilterSingleFieldKeepsOther() {
	s.login()
	s.state()

	resp := s.postForm("/admin/filter", url.Values{"character": {"dj"}}, false)
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)

	resp = s.postForm("/admin/filter", url.Values{"place": {"public-park"}}, false)
	s.Require().Equal(http.StatusSeeOther, resp.StatusCode)

	s.Equal(models.FilterState{Character: "dj", Place: "public-park"}, s.state().Filter)
}

func (s *ServerTestSuite) TestDeleteNeedsConfirmation() {
	s.login()
	s.state()

	resp := s.postForm("/admin/items/2/delete", nil, false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/admin/items/2/delete", resp.Header.Get("Location"))

	resp = s.get("/admin/items/2/delete", false)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(s.readBody(resp), "second caption")

	resp = s.postForm("/admin/items/2/delete", nil, true)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.Empty(s.gallery.deleted)
}

func (s *ServerTestSuite) TestDeleteConfirmed() {
	s.login()
	s.state()

	resp := s.postForm("/admin/items/2/delete", url.Values{"confirmed": {"true"}}, false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal([]string{"2"}, s.gallery.deleted)

	view := s.state()
	s.Require().Len(view.Items, 2)
	s.Equal(int64(1), view.Items[0].ID)
	s.Equal(int64(3), view.Items[1].ID)

	resp = s.postForm("/admin/items/99/delete", url.Values{"confirmed": {"true"}}, true)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestDeleteFailureShowsNotice() {
	s.login()
	s.state()

	s.gallery.mu.Lock()
	s.gallery.failDelete = true
	s.gallery.mu.Unlock()

	resp := s.postForm("/admin/items/1/delete", url.Values{"confirmed": {"true"}}, true)
	s.Equal(http.StatusBadGateway, resp.StatusCode)
	s.Contains(s.readBody(resp), services.DeleteFailedNotice)

	view := s.state()
	s.Len(view.Items, 3)
	s.False(view.DeleteInFlight)
}

func (s *ServerTestSuite) TestZoom() {
	s.login()
	s.state()

	resp := s.get("/admin/zoom/3", true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var env stateEnvelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	s.Equal("/images/ok.png", env.Data.ZoomedImage)

	resp = s.get("/admin/zoom/42", true)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.postForm("/admin/zoom/close", nil, true)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Empty(s.state().ZoomedImage)
}

func (s *ServerTestSuite) TestImageProxy() {
	resp := s.get("/images/ok.png", false)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("image/png", resp.Header.Get("Content-Type"))
	s.Equal(string(pngBytes), s.readBody(resp))

	resp = s.get("/images/missing.png", false)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "image/svg+xml")
	s.Contains(s.readBody(resp), "<svg")
}

func (s *ServerTestSuite) TestLogout() {
	s.login()
	s.state()

	s.auth.On("Logout", mock.Anything, testSession).Return(nil).Once()

	resp := s.postForm("/logout", nil, false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	resp = s.get("/admin", false)
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	s.auth.AssertExpectations(s.T())
}

func TestImageSrc(t *testing.T) {
	require.Equal(t, "/images/a/b.png", httprouters.ImageSrc("/a/b.png"))
	require.Equal(t, "/images/c.png", httprouters.ImageSrc("c.png"))
}
