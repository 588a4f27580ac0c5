// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/parishes").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParams are query parameters copied onto the fallback URL,
	// e.g. "state_id" so a list reopens with its filter.
	PreserveQueryParams []string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
//
// Example usage:
//
//	back := navigation.SafeBackURL(r, navigation.BackURLOptions{
//	    AllowedPrefix:       "/parishes",
//	    ExcludedSubpaths:    []string{"/edit"},
//	    Fallback:            "/parishes",
//	    PreserveQueryParams: []string{"state_id", "diocese_id"},
//	})
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	// Try query parameter first, then form value
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	// Validate against allowed prefix if specified
	if ret != "" {
		valid := true

		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}

		// Check excluded subpaths
		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}

		if valid {
			return ret
		}
	}

	fallback := opts.Fallback
	keep := url.Values{}
	for _, p := range opts.PreserveQueryParams {
		v := query.Get(r, p)
		if v == "" {
			v = strings.TrimSpace(r.FormValue(p))
		}
		if v != "" && v != "0" {
			keep.Set(p, v)
		}
	}
	if len(keep) > 0 {
		sep := "?"
		if strings.Contains(fallback, "?") {
			sep = "&"
		}
		fallback += sep + keep.Encode()
	}

	return fallback
}

// listBack builds the options for a list page whose forms live under prefix.
func listBack(prefix string) BackURLOptions {
	return BackURLOptions{
		AllowedPrefix:    prefix,
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         prefix,
	}
}

// Common back URL configurations for reuse across packages.
var (
	StatesBackURL     = listBack("/states")
	DiocesesBackURL   = listBack("/dioceses")
	ParishesBackURL   = listBack("/parishes")
	AdorationsBackURL = listBack("/adorations")
	CrusadesBackURL   = listBack("/crusades")
	UsersBackURL      = listBack("/users")
)
