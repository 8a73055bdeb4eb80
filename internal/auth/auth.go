// Package auth implements the Monarch Money login flow against the REST
// auth endpoints. GraphQL calls are handled by internal/transport; login is
// the one operation that happens before a session exists.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eshaffer321/monarch-mcp/internal/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const loginEndpoint = "/auth/login/"

// Service handles authentication operations
type Service struct {
	baseURL    string
	httpClient *http.Client
	headers    map[string]string
	session    *types.Session
	logger     types.Logger
}

// NewService creates a new auth service
func NewService(baseURL string, httpClient *http.Client, logger types.Logger) *Service {
	headers := map[string]string{
		"Accept":          "application/json",
		"Content-Type":    "application/json",
		"Client-Platform": "web",
		"User-Agent":      types.UserAgent,
		"Origin":          "https://app.monarchmoney.com",
		"device-uuid":     uuid.New().String(),
	}

	return &Service{
		baseURL:    baseURL,
		httpClient: httpClient,
		headers:    headers,
		logger:     logger,
	}
}

// Login performs authentication. Returns types.ErrMFARequired when the
// account has MFA enabled; call LoginWithMFA with the one-time code then.
func (s *Service) Login(ctx context.Context, email, password string) error {
	return s.login(ctx, email, password, "")
}

// LoginWithMFA performs login with an MFA code
func (s *Service) LoginWithMFA(ctx context.Context, email, password, mfaCode string) error {
	return s.login(ctx, email, password, mfaCode)
}

// GetSession returns the current session
func (s *Service) GetSession() (*types.Session, error) {
	if s.session == nil {
		return nil, types.ErrNotAuthenticated
	}
	return s.session, nil
}

// SetSession sets the current session
func (s *Service) SetSession(session *types.Session) {
	s.session = session
}

// login performs the login request
func (s *Service) login(ctx context.Context, email, password, mfaCode string) error {
	reqBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	if mfaCode != "" {
		reqBody["totp"] = mfaCode
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return errors.Wrap(err, "failed to marshal login request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+loginEndpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create login request")
	}

	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	if s.logger != nil {
		s.logger.Debug("Login request", "email", email, "mfa", mfaCode != "")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "login request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read login response")
	}

	if s.logger != nil {
		s.logger.Debug("Login response", "status", resp.StatusCode)
	}

	var loginResp loginResponse
	if err := json.Unmarshal(respBody, &loginResp); err != nil {
		return errors.Wrap(err, "failed to parse login response")
	}

	if loginResp.ErrorCode != "" {
		switch loginResp.ErrorCode {
		case "MFA_REQUIRED":
			return types.ErrMFARequired
		case "INVALID_CREDENTIALS":
			return types.ErrLoginFailed
		default:
			return &types.Error{
				Code:       loginResp.ErrorCode,
				Message:    loginResp.Message,
				StatusCode: resp.StatusCode,
			}
		}
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusForbidden && mfaCode == "" {
			return types.ErrMFARequired
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return types.ErrLoginFailed
		}
		return &types.Error{
			Code:       "LOGIN_FAILED",
			Message:    fmt.Sprintf("login failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if loginResp.Token == "" {
		return errors.New("no token in login response")
	}

	s.session = &types.Session{
		Token:      loginResp.Token,
		Email:      email,
		DeviceUUID: s.headers["device-uuid"],
		SavedAt:    time.Now(),
	}

	if s.logger != nil {
		s.logger.Info("Login successful", "email", email)
	}

	return nil
}

// loginResponse represents the login API response
type loginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
