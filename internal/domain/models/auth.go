package models

import (
	"net/http"
	"time"
)

// UpstreamCredentials is what the gallery API hands back on a successful login.
type UpstreamCredentials struct {
	Cookies     []*http.Cookie
	AccessToken string
}

// ConsoleSession links a console session id to the upstream login.
type ConsoleSession struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Cookies   []SessionCookie `json:"cookies"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// SessionCookie is the stored form of an upstream cookie.
type SessionCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s ConsoleSession) HTTPCookies() []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}

	return cookies
}

func SessionCookies(cookies []*http.Cookie) []SessionCookie {
	out := make([]SessionCookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, SessionCookie{Name: c.Name, Value: c.Value})
	}

	return out
}
