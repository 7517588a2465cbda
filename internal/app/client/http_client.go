package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"gastos/internal/app/client/config"
	"gastos/internal/domain/sync"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: time.Duration(cfg.SyncTimeout) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		log:       log,
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "Gastos-Client/1.0",
	}
}

// SetToken sets the bearer token attached to authenticated requests.
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck verifies the server is reachable.
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status: %d", resp.StatusCode)
	}
	return nil
}

// Login exchanges credentials for a bearer token.
func (h *httpClient) Login(ctx context.Context, login, password string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/auth/login", sync.LoginRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	var loginResp sync.LoginResponse
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("server did not return a token")
	}

	h.SetToken(loginResp.Token)
	return loginResp.Token, nil
}

// Register creates a new account.
func (h *httpClient) Register(ctx context.Context, login, password string) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/auth/register", sync.LoginRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// Logout invalidates the current token on the server.
func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// PushReplaceAll sends the complete client-side expense set. Any failure is
// reported as a *sync.PushError.
func (h *httpClient) PushReplaceAll(ctx context.Context, req sync.PushRequest) (*sync.PushResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/sync/replace-all-client-data", req)
	if err != nil {
		return nil, &sync.PushError{Err: err, Timeout: isTimeout(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &sync.PushError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &sync.PushError{Status: resp.StatusCode, Message: serverMessage(body)}
	}

	var pushResp sync.PushResponse
	if err := json.Unmarshal(body, &pushResp); err != nil {
		return nil, &sync.PushError{Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}

	return &pushResp, nil
}

// PullAll fetches the server's complete authoritative state. Any failure is
// reported as a *sync.PullError.
func (h *httpClient) PullAll(ctx context.Context) (*sync.PullResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/sync/get-all-server-data", nil)
	if err != nil {
		return nil, &sync.PullError{Err: err, Timeout: isTimeout(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &sync.PullError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &sync.PullError{Status: resp.StatusCode, Message: serverMessage(body)}
	}

	var pullResp sync.PullResponse
	if err := json.Unmarshal(body, &pullResp); err != nil {
		return nil, &sync.PullError{Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}

	return &pullResp, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("received response", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		if msg := serverMessage(body); msg != "" {
			return fmt.Errorf("server error: %s", msg)
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	switch {
	case errResp.Error != "":
		return errResp.Error
	case errResp.Message != "":
		return errResp.Message
	default:
		return errResp.Detail
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
