package globus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

const activationRequiredCode = "ClientError.ActivationRequired"

type client struct {
	http *http.Client
	cfg  config.GlobusConfig

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates the client for the external transfer API. Access tokens
// are minted from the configured refresh token and cached until shortly
// before expiry.
func NewClient(cfg config.GlobusConfig) port.TransferClient {
	return &client{
		http: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:  cfg,
	}
}

// CreateShare creates a shared endpoint exposing hostPath of the host
// endpoint and returns its id. A dormant host endpoint is activated once and
// the creation retried.
func (c *client) CreateShare(ctx context.Context, hostPath, displayName, description string) (string, error) {
	payload := map[string]string{
		"DATA_TYPE":     "shared_endpoint",
		"display_name":  displayName,
		"description":   description,
		"host_endpoint": c.cfg.HostEndpointID,
		"host_path":     hostPath,
	}

	var resp struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/v0.10/shared_endpoint", payload, &resp)
	if isActivationRequired(err) {
		if err := c.activateHostEndpoint(ctx); err != nil {
			return "", err
		}
		err = c.do(ctx, http.MethodPost, "/v0.10/shared_endpoint", payload, &resp)
	}
	if err != nil {
		return "", err
	}

	return resp.ID, nil
}

// DeleteEndpoint removes a shared endpoint
func (c *client) DeleteEndpoint(ctx context.Context, endpointID string) error {
	return c.do(ctx, http.MethodDelete, "/v0.10/endpoint/"+endpointID, nil, nil)
}

// AddAllAuthenticatedUsersACL grants read and write on the whole share to
// every authenticated transfer user; access control beyond that is the share
// link distribution
func (c *client) AddAllAuthenticatedUsersACL(ctx context.Context, endpointID string) error {
	payload := map[string]string{
		"DATA_TYPE":      "access",
		"principal_type": "all_authenticated_users",
		"principal":      "",
		"path":           "/",
		"permissions":    "rw",
	}

	return c.do(ctx, http.MethodPost, "/v0.10/endpoint/"+endpointID+"/access", payload, nil)
}

func (c *client) activateHostEndpoint(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v0.10/endpoint/"+c.cfg.HostEndpointID+"/autoactivate", nil, nil)
}

// do runs one transfer API call, retrying once with a fresh access token when
// the cached one is rejected.
func (c *client) do(ctx context.Context, method, path string, payload, out any) error {
	err := c.doOnce(ctx, method, path, payload, out, false)

	var transferErr *transferError
	if errors.As(err, &transferErr) && transferErr.StatusCode == http.StatusUnauthorized {
		return c.doOnce(ctx, method, path, payload, out, true)
	}

	return err
}

func (c *client) doOnce(ctx context.Context, method, path string, payload, out any, forceToken bool) error {
	token, err := c.token(ctx, forceToken)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding transfer request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.TransferURL+path, body)
	if err != nil {
		return fmt.Errorf("building transfer request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: calling transfer api: %v", domain.ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newTransferError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding transfer response: %v", domain.ErrExternalAPI, err)
		}
	}

	return nil
}

// token returns a cached access token, minting a new one from the refresh
// token when the cache is empty, stale, or explicitly invalidated.
func (c *client) token(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.cfg.TransferRefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AuthURL+"/v2/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: refreshing access token: %v", domain.ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", domain.ErrExternalAPI, resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%w: decoding token response: %v", domain.ErrExternalAPI, err)
	}

	c.accessToken = tokenResp.AccessToken
	// Renew a minute early so in-flight requests do not race the expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

// transferError carries the structured error body of the transfer API
type transferError struct {
	StatusCode int
	Code       string
	Message    string
}

func newTransferError(resp *http.Response) error {
	tErr := &transferError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		tErr.Code = body.Code
		tErr.Message = body.Message
	}

	return fmt.Errorf("%w: %v", domain.ErrExternalAPI, tErr)
}

func (e *transferError) Error() string {
	return fmt.Sprintf("transfer api returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func isActivationRequired(err error) bool {
	var transferErr *transferError
	return errors.As(err, &transferErr) && transferErr.Code == activationRequiredCode
}
