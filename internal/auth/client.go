// Package auth talks to the backend-as-a-service auth API: password-grant
// sign-in, sign-out and token refresh. Session material is mirrored into the
// local cache so a restart can restore the session without a network call.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/meslee/moneyledger/internal/common"
)

// tokenResponse is the wire shape of the auth backend's token endpoint.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// apiClient is the minimal HTTP surface against the auth backend.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{baseURL: baseURL, http: http.DefaultClient}
}

func (c *apiClient) passwordGrant(email, password string) (*tokenResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	return c.token("password", body)
}

func (c *apiClient) refreshGrant(refreshToken string) (*tokenResponse, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}
	return c.token("refresh_token", body)
}

func (c *apiClient) token(grantType string, body []byte) (*tokenResponse, error) {
	url := fmt.Sprintf("%s/token?grant_type=%s", c.baseURL, grantType)

	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("auth request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, common.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth request failed: status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	return &tr, nil
}

func (c *apiClient) logout(accessToken string) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request error: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
