package galleryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gallery_admin/internal/domain/models"
	"gallery_admin/internal/metrics"
)

var (
	ErrTransport         = errors.New("gallery api unreachable")
	ErrMalformedResponse = errors.New("malformed gallery api response")
)

// APIError is returned for any non-2xx answer from the gallery API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gallery api returned status %d: %s", e.Status, e.Message)
	}

	return fmt.Sprintf("gallery api returned status %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	cookies []*http.Cookie
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithCookies returns a copy of the client that sends cookies on every request.
func (c *Client) WithCookies(cookies []*http.Cookie) *Client {
	cp := *c
	cp.cookies = cookies

	return &cp
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ImageURL builds the public URL of an image reference.
func (c *Client) ImageURL(ref string) string {
	return c.baseURL + "/images/" + strings.TrimLeft(ref, "/")
}

type listResponse struct {
	Data        []models.GalleryItem `json:"data"`
	TotalPage   *int                 `json:"total_page"`
	CurrentPage int                  `json:"current_page"`
	TotalItems  int                  `json:"total_items"`
}

type errorBody struct {
	Message string `json:"message"`
}

// ListGallery fetches one page of the gallery listing. Empty filters are not sent.
func (c *Client) ListGallery(ctx context.Context, q models.GalleryQuery) (*models.GalleryPage, error) {
	const op = "galleryapi.ListGallery"

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Character != "" {
		params.Set("character", q.Character)
	}
	if q.Place != "" {
		params.Set("place", q.Place)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/gallery?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(req, "list")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("list", "malformed").Inc()
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}

	page := &models.GalleryPage{
		Items:       body.Data,
		TotalPages:  1,
		CurrentPage: body.CurrentPage,
		TotalItems:  body.TotalItems,
	}
	if body.TotalPage != nil {
		page.TotalPages = *body.TotalPage
	}
	if page.Items == nil {
		page.Items = []models.GalleryItem{}
	}

	return page, nil
}

// DeleteItem deletes a gallery item. Any 2xx status counts as success.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	const op = "galleryapi.DeleteItem"

	req, err := c.newRequest(ctx, http.MethodDelete, "/api/gallery/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(req, "delete")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Data        struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

// Login posts the credentials and returns the cookies the API set.
func (c *Client) Login(ctx context.Context, email, password string) (*models.UpstreamCredentials, error) {
	const op = "galleryapi.Login"

	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "login")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	creds := &models.UpstreamCredentials{Cookies: resp.Cookies()}

	// the body is informational; a login without a token body is still valid
	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		creds.AccessToken = body.AccessToken
		if creds.AccessToken == "" {
			creds.AccessToken = body.Data.AccessToken
		}
	}

	return creds, nil
}

// FetchImage opens an image from the API. The caller closes the body.
func (c *Client) FetchImage(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	const op = "galleryapi.FetchImage"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(ref), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(req, "image")
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do sends req with the client's cookies and turns non-2xx answers into *APIError.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "status_"+strconv.Itoa(resp.StatusCode)).Inc()

		apiErr := &APIError{Status: resp.StatusCode}
		var body errorBody
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
			apiErr.Message = body.Message
		}

		return nil, apiErr
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "ok").Inc()

	return resp, nil
}
