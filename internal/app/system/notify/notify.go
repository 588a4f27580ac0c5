// Package notify carries timed flash notifications across a redirect in the
// gorilla session, and builds them for same-response rendering.
package notify

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Level is a notification's severity.
type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Duration is how long a level stays on screen.
func (l Level) Duration() time.Duration {
	switch l {
	case Warning:
		return 5 * time.Second
	case Error:
		return 7 * time.Second
	default:
		return 3 * time.Second
	}
}

// Message is one notification.
type Message struct {
	Level Level
	Text  string
}

// Millis is the display duration in milliseconds, for templates.
func (m Message) Millis() int64 { return m.Level.Duration().Milliseconds() }

func New(level Level, text string) Message { return Message{Level: level, Text: text} }

// Sessions is satisfied by auth.SessionManager.
type Sessions interface {
	GetSession(r *http.Request) (*sessions.Session, error)
}

const sep = "\x1f"

// Flash queues a message to show on the next rendered page.
func Flash(w http.ResponseWriter, r *http.Request, s Sessions, level Level, text string) {
	sess, err := s.GetSession(r)
	if err != nil {
		zap.L().Debug("flash on undecodable session", zap.Error(err))
	}
	sess.AddFlash(string(level) + sep + text)
	if err := sess.Save(r, w); err != nil {
		zap.L().Warn("save flash", zap.Error(err))
	}
}

// Pop returns and clears queued messages. It writes the session cookie only
// when there was something to clear.
func Pop(w http.ResponseWriter, r *http.Request, s Sessions) []Message {
	if s == nil {
		return nil
	}
	sess, err := s.GetSession(r)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		zap.L().Warn("clear flashes", zap.Error(err))
	}
	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		lvl, text, found := strings.Cut(str, sep)
		if !found {
			lvl, text = string(Info), str
		}
		out = append(out, Message{Level: Level(lvl), Text: text})
	}
	return out
}
