package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/lib/logger/sl"
	"gallery_admin/internal/services/auth"
	services "gallery_admin/internal/services/gallery_service"
	"gallery_admin/internal/transport/http/dto/request"
	"gallery_admin/internal/transport/http/dto/response"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "gallery_admin/docs"
)

const (
	sessionName = "gallery_admin"

	sessionIDKey      = "session_id"
	consoleSessionKey = "console_session"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.ConsoleSession, error)
	Session(ctx context.Context, id string) (models.ConsoleSession, error)
	Logout(ctx context.Context, id string) error
}

type ControllerRegistry interface {
	Get(session models.ConsoleSession) (*services.Controller, bool)
	Forget(sessionID string)
}

type ImageSource interface {
	FetchImage(ctx context.Context, ref string) (io.ReadCloser, string, error)
}

type Routers struct {
	log         *slog.Logger
	Auth        AuthService
	Controllers ControllerRegistry
	Images      ImageSource
}

func NewRouter(log *slog.Logger, authService AuthService, controllers ControllerRegistry, images ImageSource) *Routers {
	return &Routers{
		log:         log,
		Auth:        authService,
		Controllers: controllers,
		Images:      images,
	}
}

type loginPage struct {
	Email string
	Error string
	Alert string
}

type galleryPage struct {
	Email         string
	View          services.View
	Characters    []models.CatalogEntry
	Places        []models.CatalogEntry
	AllCharacters string
	AllPlaces     string
}

type confirmPage struct {
	Item models.GalleryItem
}

// RequireSession loads the console session named by the session cookie.
// Anonymous HTML requests are sent to the login form, JSON ones get 401.
func (r *Routers) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cs, err := r.currentSession(c)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				return c.JSON(http.StatusInternalServerError, response.ErrInternal)
			}

			if wantsJSON(c) {
				return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
			}

			return c.Redirect(http.StatusSeeOther, "/")
		}

		c.Set(consoleSessionKey, cs)

		return next(c)
	}
}

func (r *Routers) currentSession(c echo.Context) (models.ConsoleSession, error) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return models.ConsoleSession{}, auth.ErrUnauthenticated
	}

	id, _ := sess.Values[sessionIDKey].(string)

	return r.Auth.Session(c.Request().Context(), id)
}

func (r *Routers) controller(c echo.Context) (models.ConsoleSession, *services.Controller) {
	cs := c.Get(consoleSessionKey).(models.ConsoleSession)
	ctrl, _ := r.Controllers.Get(cs)

	return cs, ctrl
}

// LoginPage godoc
// @Summary Login form
// @Tags console
// @Produce html
// @Success 200 {string} string "Login form"
// @Success 303 {string} string "Already logged in"
// @Router / [get]
func (r *Routers) LoginPage(c echo.Context) error {
	if _, err := r.currentSession(c); err == nil {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	return c.Render(http.StatusOK, "login.html", loginPage{})
}

// Login godoc
// @Summary Console login
// @Description Checks the credentials against the gallery API and opens a console session.
// @Tags console
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 303 {string} string "Redirect to /admin"
// @Failure 400 {string} string "Login form with validation error"
// @Failure 401 {string} string "Login form with the server's message"
// @Router /login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", loginPage{Error: response.ErrInvalidRequestFormat.Details})
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid login form", slog.String("email", req.Email), sl.Err(err))
		return c.Render(http.StatusBadRequest, "login.html", loginPage{
			Email: req.Email,
			Error: "Enter a valid email and password.",
		})
	}

	cs, err := r.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		msg := auth.LoginFailedMessage

		var loginErr *auth.LoginError
		if errors.As(err, &loginErr) {
			msg = loginErr.Message
		}

		return c.Render(http.StatusUnauthorized, "login.html", loginPage{
			Email: req.Email,
			Error: msg,
			Alert: msg,
		})
	}

	sess, _ := session.Get(sessionName, c)
	sess.Values[sessionIDKey] = cs.ID
	if left := time.Until(cs.ExpiresAt); left > 0 {
		sess.Options.MaxAge = int(left.Seconds())
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session cookie", sl.Err(err))
		return c.Render(http.StatusInternalServerError, "login.html", loginPage{
			Email: req.Email,
			Error: auth.LoginFailedMessage,
			Alert: auth.LoginFailedMessage,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout godoc
// @Summary Console logout
// @Tags console
// @Success 303 {string} string "Redirect to the login form"
// @Router /logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	sess, err := session.Get(sessionName, c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if id, _ := sess.Values[sessionIDKey].(string); id != "" {
		if err := r.Auth.Logout(c.Request().Context(), id); err != nil {
			r.log.Error("failed to drop session", slog.String("op", op), sl.Err(err))
		}
		r.Controllers.Forget(id)
	}

	delete(sess.Values, sessionIDKey)
	sess.Options.MaxAge = -1

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Error("failed to clear session cookie", slog.String("op", op), sl.Err(err))
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Gallery godoc
// @Summary Gallery management screen
// @Tags gallery
// @Produce html
// @Success 200 {string} string "Gallery page"
// @Router /admin [get]
func (r *Routers) Gallery(c echo.Context) error {
	cs, ctrl := r.controller(c)
	ctrl.Load(detach(c))

	return c.Render(http.StatusOK, "gallery.html", galleryPage{
		Email:         cs.Email,
		View:          ctrl.View(),
		Characters:    models.Characters,
		Places:        models.Places,
		AllCharacters: models.AllCharacters,
		AllPlaces:     models.AllPlaces,
	})
}

// State godoc
// @Summary Gallery screen state
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response{data=services.View}
// @Failure 401 {object} response.ErrorResponse
// @Router /admin/state [get]
func (r *Routers) State(c echo.Context) error {
	_, ctrl := r.controller(c)
	ctrl.Load(detach(c))

	return c.JSON(http.StatusOK, response.SuccessResponse(ctrl.View()))
}

// Refresh godoc
// @Summary Reload the current page
// @Tags gallery
// @Success 303 {string} string "Redirect to /admin"
// @Router /admin/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	_, ctrl := r.controller(c)
	ctrl.Refresh(detach(c))

	return r.done(c, ctrl)
}

// SetFilter godoc
// @Summary Change the character and place filters
// @Description Unknown ids are rejected. An omitted field keeps its current value.
// @Tags gallery
// @Accept x-www-form-urlencoded
// @Param character formData string false "Character id or 'All Character'"
// @Param place formData string false "Place id or 'All Place'"
// @Success 303 {string} string "Redirect to /admin"
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/filter [post]
func (r *Routers) SetFilter(c echo.Context) error {
	_, ctrl := r.controller(c)

	var req request.FilterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := ctrl.UpdateFilter(detach(c), req.Character, req.Place); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_filter", err.Error()))
	}

	return r.done(c, ctrl)
}

// GoToPage godoc
// @Summary Navigate to a page
// @Description Ignored while a fetch is in flight, for the current page and outside 1..total.
// @Description Only a non-numeric value is rejected.
// @Tags gallery
// @Accept x-www-form-urlencoded
// @Param page formData int true "Page number"
// @Success 303 {string} string "Redirect to /admin"
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/page [post]
func (r *Routers) GoToPage(c echo.Context) error {
	_, ctrl := r.controller(c)

	// an empty quick-jump box binds as 0, which the controller ignores
	var req request.PageRequest
	if err := c.Bind(&req); err != nil {
		if wantsJSON(c) {
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	ctrl.GoToPage(detach(c), req.Page)

	return r.done(c, ctrl)
}

// ConfirmDelete godoc
// @Summary Delete confirmation prompt
// @Tags gallery
// @Produce html
// @Param id path int true "Item id"
// @Success 200 {string} string "Confirmation page"
// @Router /admin/items/{id}/delete [get]
func (r *Routers) ConfirmDelete(c echo.Context) error {
	_, ctrl := r.controller(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	for _, item := range ctrl.State().Items {
		if item.ID == id {
			return c.Render(http.StatusOK, "confirm.html", confirmPage{Item: item})
		}
	}

	return c.Redirect(http.StatusSeeOther, "/admin")
}

// DeleteItem godoc
// @Summary Delete a displayed item
// @Description Requires confirmed=true. On API failure the notice is shown and the item stays.
// @Tags gallery
// @Accept x-www-form-urlencoded
// @Param id path int true "Item id"
// @Param confirmed formData bool true "User confirmed the delete"
// @Success 303 {string} string "Redirect to /admin"
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /admin/items/{id}/delete [post]
func (r *Routers) DeleteItem(c echo.Context) error {
	const op = "http.routers.DeleteItem"

	_, ctrl := r.controller(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	confirmed, _ := strconv.ParseBool(c.FormValue("confirmed"))

	err = ctrl.Delete(detach(c), id, confirmed)

	var deleteErr *services.DeleteError

	switch {
	case err == nil:
		return r.done(c, ctrl)
	case errors.Is(err, services.ErrNotConfirmed):
		if wantsJSON(c) {
			return c.JSON(http.StatusBadRequest, response.ErrConfirmationRequired)
		}
		return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
	case errors.Is(err, services.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, response.ErrItemNotFound)
	case errors.Is(err, services.ErrDeleteInFlight):
		return c.JSON(http.StatusConflict, response.ErrDeleteInFlight)
	case errors.As(err, &deleteErr):
		if wantsJSON(c) {
			return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails("delete_failed", deleteErr.Notice()))
		}
		return r.done(c, ctrl)
	}

	r.log.Error("unexpected delete error", slog.String("op", op), sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// OpenZoom godoc
// @Summary Show an item's image full size
// @Tags gallery
// @Param id path int true "Item id"
// @Success 303 {string} string "Redirect to /admin"
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/zoom/{id} [get]
func (r *Routers) OpenZoom(c echo.Context) error {
	_, ctrl := r.controller(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := ctrl.OpenZoom(id); err != nil {
		return c.JSON(http.StatusNotFound, response.ErrItemNotFound)
	}

	return r.done(c, ctrl)
}

// CloseZoom godoc
// @Summary Close the zoomed image
// @Tags gallery
// @Success 303 {string} string "Redirect to /admin"
// @Router /admin/zoom/close [post]
func (r *Routers) CloseZoom(c echo.Context) error {
	_, ctrl := r.controller(c)
	ctrl.CloseZoom()

	return r.done(c, ctrl)
}

// Image godoc
// @Summary Gallery image proxy
// @Description Streams an image from the gallery API, or a placeholder when it cannot be loaded.
// @Tags images
// @Produce image/png
// @Param path path string true "Image reference"
// @Success 200 {file} binary
// @Router /images/{path} [get]
func (r *Routers) Image(c echo.Context) error {
	const op = "http.routers.Image"

	ref := c.Param("*")

	body, contentType, err := r.Images.FetchImage(c.Request().Context(), ref)
	if err != nil {
		r.log.Debug("serving placeholder image", slog.String("op", op), slog.String("ref", ref), sl.Err(err))
		return c.Blob(http.StatusOK, "image/svg+xml", placeholderImage)
	}
	defer body.Close()

	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, body)
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// done answers a gallery mutation: JSON clients get the new view, browsers
// are sent back to the gallery screen.
func (r *Routers) done(c echo.Context, ctrl *services.Controller) error {
	if wantsJSON(c) {
		view := ctrl.View()
		return c.JSON(http.StatusOK, response.SuccessWithMessage(view, view.Notice))
	}

	return c.Redirect(http.StatusSeeOther, "/admin")
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// detach keeps the request's values but not its cancellation: a browser
// navigating away must not leave the controller with a cancelled fetch.
func detach(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}
