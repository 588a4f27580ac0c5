// Package htmlsanitize turns untrusted directory text (websites, comments)
// into safe template.HTML using bluemonday.
package htmlsanitize

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	linkOnce   sync.Once
	linkPolicy *bluemonday.Policy
)

// links allows only anchors with http(s)/mailto hrefs. External links open in
// a new tab with rel="nofollow noopener".
func links() *bluemonday.Policy {
	linkOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		linkPolicy = p
	})
	return linkPolicy
}

var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// NormalizeWebsite trims s and prefixes https:// when it carries no scheme.
// "example.org" and "example.org:8080/x" both become https URLs; values that
// already name a scheme are returned unchanged.
func NormalizeWebsite(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		return s
	}
	if m := schemeRE.FindString(s); m != "" {
		rest := s[len(m):]
		// host:port, not a scheme
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return s
		}
	}
	return "https://" + s
}

// Link renders text as an anchor to website. An empty website yields the
// escaped text alone; a website with a disallowed scheme is stripped down to
// its text.
func Link(text, website string) template.HTML {
	text = strings.TrimSpace(text)
	href := NormalizeWebsite(website)
	if href == "" {
		return template.HTML(html.EscapeString(text))
	}
	if text == "" {
		text = strings.TrimSpace(website)
	}
	raw := `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(text) + `</a>`
	return template.HTML(links().Sanitize(raw))
}

// IsPlainText reports whether s has no HTML tags.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

// PlainTextToHTML escapes s and converts newlines to <br>, wrapped in <p>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	esc := html.EscapeString(s)
	esc = strings.ReplaceAll(esc, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(esc, "\n", "<br>") + "</p>"
}

// Comments renders free-text comments for display. Any markup is stripped.
func Comments(s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !IsPlainText(s) {
		s = bluemonday.StrictPolicy().Sanitize(s)
		s = html.UnescapeString(s)
	}
	return template.HTML(PlainTextToHTML(s))
}
