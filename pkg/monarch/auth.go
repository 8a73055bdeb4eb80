package monarch

import (
	"context"

	"github.com/eshaffer321/monarch-mcp/internal/auth"
	internalTypes "github.com/eshaffer321/monarch-mcp/internal/types"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// newAuthService creates a new auth service
func newAuthService(client *Client) *authService {
	return &authService{
		client: client,
		service: auth.NewService(
			client.baseURL,
			client.httpClient,
			client.options.Logger,
		),
	}
}

// convertSession converts internal types.Session to monarch.Session
func convertSession(s *internalTypes.Session) *Session {
	if s == nil {
		return nil
	}
	return &Session{
		Token:      s.Token,
		Email:      s.Email,
		DeviceUUID: s.DeviceUUID,
		SavedAt:    s.SavedAt,
	}
}

// Login performs authentication. Returns ErrMFARequired when the account
// has MFA enabled.
func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := a.service.Login(ctx, email, password); err != nil {
		return err
	}
	return a.adoptSession()
}

// LoginWithMFA performs login with an MFA code
func (a *authService) LoginWithMFA(ctx context.Context, email, password, mfaCode string) error {
	if err := a.service.LoginWithMFA(ctx, email, password, mfaCode); err != nil {
		return err
	}
	return a.adoptSession()
}

// GetSession returns the current session
func (a *authService) GetSession() (*Session, error) {
	session, err := a.service.GetSession()
	if err != nil {
		return nil, err
	}
	return convertSession(session), nil
}

// adoptSession copies the freshly obtained session onto the client and its
// transport so subsequent GraphQL calls are authenticated.
func (a *authService) adoptSession() error {
	session, err := a.service.GetSession()
	if err != nil {
		return err
	}

	a.client.session = convertSession(session)
	a.client.transport.SetSession(session)

	return nil
}
