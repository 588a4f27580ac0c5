// Package filters remembers each list page's state/diocese/parish filter in a
// signed cookie so the list can be restored after an edit.
package filters

import (
	"net/http"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/gorilla/securecookie"
)

const (
	cookiePrefix = "dh_filter_"
	maxAge       = 7 * 24 * time.Hour
)

// Store encodes filters with securecookie.
type Store struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// New returns a Store. blockKey may be nil (signed, not encrypted).
func New(hashKey, blockKey []byte, secure bool) *Store {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge.Seconds()))
	return &Store{sc: sc, secure: secure}
}

func cookieName(list string) string { return cookiePrefix + list }

// Save stores sel for list. A zero selection clears the cookie.
func (s *Store) Save(w http.ResponseWriter, list string, sel cascade.Selection) error {
	if sel.IsZero() {
		s.Clear(w, list)
		return nil
	}
	v, err := s.sc.Encode(cookieName(list), sel)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(list),
		Value:    v,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the saved selection for list. ok is false when there is none
// or the cookie fails verification.
func (s *Store) Load(r *http.Request, list string) (sel cascade.Selection, ok bool) {
	c, err := r.Cookie(cookieName(list))
	if err != nil {
		return cascade.Selection{}, false
	}
	if err := s.sc.Decode(cookieName(list), c.Value, &sel); err != nil {
		return cascade.Selection{}, false
	}
	return sel, true
}

// Clear deletes the saved selection for list.
func (s *Store) Clear(w http.ResponseWriter, list string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(list),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
