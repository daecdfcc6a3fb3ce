package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginResult carries what the login handler needs: the role for the
// post-login redirect and the session cookies to forward to the browser.
type LoginResult struct {
	Role    string
	Cookies []*http.Cookie
}

// Login sends credentials to the backend. The backend sets the session
// cookie; the response body names the account's role.
func (c *Client) Login(email, password string) (*LoginResult, error) {
	creds := map[string]string{"email": email, "password": password}
	jsonBody, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login data: %w", err)
	}

	resp, err := c.do("POST", "/auth/login", bytes.NewBuffer(jsonBody), "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := classifyResponse(resp); err != nil {
		return nil, err
	}

	var body struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
		Role string `json:"role"` // some backend versions skip the user wrapper
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cannot decode login response: %w", err)
	}

	role := body.User.Role
	if role == "" {
		role = body.Role
	}

	return &LoginResult{Role: role, Cookies: resp.Cookies()}, nil
}

// Logout tells the backend to drop the session. Best effort: the caller
// clears the browser cookie regardless.
func (c *Client) Logout(r *http.Request) error {
	resp, err := c.do("POST", "/auth/logout", nil, "", r.Cookies()...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return classifyResponse(resp)
}
