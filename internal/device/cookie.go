/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package device

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	cookieLifetime = 365 * 24 * time.Hour

	// browsers drop cookies whose name and value exceed about 4 KB
	maxCookieBytes = 4000
)

var ErrTooLarge = errors.New("device: value too large for a cookie")

// CookieStore keeps state in the requesting browser's cookies, so the server
// itself holds nothing between requests.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	path    string
	secure  bool
	written map[string]string
}

// NewCookieStore scopes cookies to path. Values written during the request
// are visible to later Gets on the same store.
func NewCookieStore(w http.ResponseWriter, r *http.Request, path string, secure bool) *CookieStore {
	if path == "" {
		path = "/"
	}

	return &CookieStore{
		w:       w,
		r:       r,
		path:    path,
		secure:  secure,
		written: make(map[string]string),
	}
}

// cookie names must be tokens; rooms may hold spaces and punctuation
func cookieName(key string) string {
	return url.QueryEscape(key)
}

func (c *CookieStore) Get(key string) (string, bool) {
	if v, ok := c.written[key]; ok {
		return v, true
	}

	ck, err := c.r.Cookie(cookieName(key))
	if err != nil {
		return "", false
	}

	v, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return "", false
	}

	return string(v), true
}

// Set writes value as a cookie, or fails with ErrTooLarge without writing
// anything when the browser would refuse to keep it.
func (c *CookieStore) Set(key, value string) error {
	name := cookieName(key)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value))
	if len(name)+len(encoded) > maxCookieBytes {
		return fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, key, len(name)+len(encoded))
	}

	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     c.path,
		MaxAge:   int(cookieLifetime / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.written[key] = value

	return nil
}
