package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/api"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

// backend calls are network-bound; anything slower than this is treated as
// a failure and the request proceeds unauthenticated/profile-unavailable.
const apiCallTimeout = 30 * time.Second

// APIClient forwards the frontend's auth calls to the backend API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: apiCallTimeout},
	}
}

// Login posts the credentials to the backend. A non-2xx status still
// decodes into the response envelope so the caller sees success=false with
// the backend's message.
func (c *APIClient) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Login] marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+api.RouteAuthLogin, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Login] new request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Login] do")
	}
	defer resp.Body.Close()

	var authResp api.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return nil, errors.Wrap(err, "[APIClient.Login] decode")
	}
	return &authResp, nil
}

// Register creates an account on the backend. As with Login, a non-2xx
// status still decodes into the envelope so the backend's message reaches
// the signup form.
func (c *APIClient) Register(ctx context.Context, regReq api.RegisterRequest) (*api.AuthResponse, error) {
	body, err := json.Marshal(regReq)
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Register] marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+api.RouteAuthRegister, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Register] new request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Register] do")
	}
	defer resp.Body.Close()

	var authResp api.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return nil, errors.Wrap(err, "[APIClient.Register] decode")
	}
	return &authResp, nil
}

// Profile fetches the live profile for the token holder.
func (c *APIClient) Profile(ctx context.Context, token string) (*users.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+api.RouteUserProfile, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Profile] new request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[APIClient.Profile] do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("[APIClient.Profile] unexpected status %d", resp.StatusCode)
	}

	var profile users.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Wrap(err, "[APIClient.Profile] decode")
	}
	return &profile, nil
}
