// internal/app/system/backend/auth.go
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoToken means the login response carried no recognisable token.
var ErrNoToken = errors.New("backend: login response has no token")

// AuthService wraps POST /auth/login.
type AuthService struct {
	c *Client
}

// LoginResult is the outcome of a successful login. User is nil when the
// backend only returns a token.
type LoginResult struct {
	Token string
	User  *User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"access_token"`
	JWT         string          `json:"jwt"`
	User        json.RawMessage `json:"user"`
}

// Login exchanges credentials for a session token.
func (a *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	resp, err := a.c.do(ctx, "auth", http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	p, err := decodeOne[loginPayload](resp.body, resp.status)
	if err != nil {
		return LoginResult{}, err
	}

	res := LoginResult{Token: firstNonEmpty(p.Token, p.AccessToken, p.JWT)}
	if res.Token == "" {
		return LoginResult{}, ErrNoToken
	}
	if len(p.User) > 0 && string(p.User) != "null" {
		var u User
		if err := json.Unmarshal(p.User, &u); err != nil {
			return LoginResult{}, fmt.Errorf("decode login user: %w", err)
		}
		res.User = &u
	}
	return res, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
