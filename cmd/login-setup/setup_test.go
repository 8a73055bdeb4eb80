package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

type fakeAuth struct {
	loginErr error
	mfaErr   error
	email    string
	password string
	mfaCode  string
	session  *monarch.Session
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) error {
	f.email, f.password = email, password
	if f.loginErr == nil {
		f.session = &monarch.Session{Token: "tok-password", Email: email}
	}
	return f.loginErr
}

func (f *fakeAuth) LoginWithMFA(ctx context.Context, email, password, mfaCode string) error {
	f.email, f.password, f.mfaCode = email, password, mfaCode
	if f.mfaErr == nil {
		f.session = &monarch.Session{Token: "tok-mfa", Email: email}
	}
	return f.mfaErr
}

func (f *fakeAuth) GetSession() (*monarch.Session, error) {
	if f.session == nil {
		return nil, monarch.ErrNotAuthenticated
	}
	return f.session, nil
}

type fakeAccountLister struct {
	err error
}

func (f *fakeAccountLister) List(ctx context.Context) ([]*monarch.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*monarch.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
}

func (f *fakeAccountLister) GetHoldings(ctx context.Context, accountID string) ([]*monarch.Holding, error) {
	return nil, nil
}

func (f *fakeAccountLister) Refresh(ctx context.Context, accountIDs ...string) (*monarch.RefreshRequest, error) {
	return nil, nil
}

func (f *fakeAccountLister) IsRefreshComplete(ctx context.Context, accountIDs ...string) (bool, error) {
	return true, nil
}

type fakeStore struct {
	saved   []*monarch.Session
	saveErr error
}

func (f *fakeStore) Save(s *monarch.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	return nil
}

type setupEnv struct {
	auth     *fakeAuth
	accounts *fakeAccountLister
	store    *fakeStore
	out      *bytes.Buffer
	secrets  []string
	tokens   []string
}

func newSetupEnv() *setupEnv {
	return &setupEnv{
		auth:     &fakeAuth{},
		accounts: &fakeAccountLister{},
		store:    &fakeStore{},
		out:      &bytes.Buffer{},
	}
}

func (e *setupEnv) run(t *testing.T, stdin string) error {
	t.Helper()

	io := &setupIO{
		in:  bufio.NewReader(strings.NewReader(stdin)),
		out: e.out,
		readSecret: func(prompt string) (string, error) {
			if len(e.secrets) == 0 {
				return "", fmt.Errorf("unexpected secret prompt: %s", prompt)
			}
			secret := e.secrets[0]
			e.secrets = e.secrets[1:]
			return secret, nil
		},
	}

	newClient := func(token string) (*monarch.Client, error) {
		e.tokens = append(e.tokens, token)
		return &monarch.Client{
			Auth:     e.auth,
			Accounts: e.accounts,
		}, nil
	}

	return runSetup(context.Background(), io, newClient, e.store)
}

func TestRunSetup_PasswordLogin(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"hunter2"}

	err := env.run(t, "1\nuser@example.com\n")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", env.auth.email)
	assert.Equal(t, "hunter2", env.auth.password)
	assert.Empty(t, env.auth.mfaCode)

	require.Len(t, env.store.saved, 1)
	assert.Equal(t, "tok-password", env.store.saved[0].Token)
	assert.Contains(t, env.out.String(), "Found 2 accounts")
}

func TestRunSetup_PasswordLoginWithMFA(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"hunter2"}
	env.auth.loginErr = monarch.ErrMFARequired

	err := env.run(t, "1\nuser@example.com\n123456\n")
	require.NoError(t, err)

	assert.Equal(t, "123456", env.auth.mfaCode)
	require.Len(t, env.store.saved, 1)
	assert.Equal(t, "tok-mfa", env.store.saved[0].Token)
}

func TestRunSetup_WrongMFACode(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"hunter2"}
	env.auth.loginErr = monarch.ErrMFARequired
	env.auth.mfaErr = fmt.Errorf("invalid code")

	err := env.run(t, "1\nuser@example.com\n000000\n")
	require.Error(t, err)
	assert.Empty(t, env.store.saved, "nothing persisted on a failed login")
}

func TestRunSetup_BadCredentials(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"wrong"}
	env.auth.loginErr = monarch.ErrLoginFailed

	err := env.run(t, "1\nuser@example.com\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check your email and password")
	assert.Empty(t, env.store.saved)
}

func TestRunSetup_TokenLogin(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"Bearer abc123def456"}

	err := env.run(t, "2\n")
	require.NoError(t, err)

	// The pasted header is normalized before the client sees it.
	require.Len(t, env.tokens, 1)
	assert.Equal(t, "abc123def456", env.tokens[0])

	require.Len(t, env.store.saved, 1)
	assert.Equal(t, "abc123def456", env.store.saved[0].Token)
}

func TestRunSetup_EmptyToken(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"   "}

	err := env.run(t, "2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
	assert.Empty(t, env.store.saved)
}

func TestRunSetup_ConnectionTestFailure(t *testing.T) {
	env := newSetupEnv()
	env.secrets = []string{"hunter2"}
	env.accounts.err = fmt.Errorf("remote unavailable")

	err := env.run(t, "1\nuser@example.com\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection test failed")
	assert.Empty(t, env.store.saved, "nothing persisted when the connection test fails")
}

func TestChooseAuthMethod(t *testing.T) {
	tests := []struct {
		in   string
		want authMethod
	}{
		{"1\n", methodPassword},
		{"\n", methodPassword},
		{"2\n", methodToken},
		{"token\n", methodToken},
		{"SSO\n", methodToken},
		{"google\n", methodToken},
		{"nonsense\n", methodPassword},
	}

	for _, tt := range tests {
		io := &setupIO{
			in:  bufio.NewReader(strings.NewReader(tt.in)),
			out: &bytes.Buffer{},
		}
		method, err := chooseAuthMethod(io)
		require.NoError(t, err)
		assert.Equal(t, tt.want, method, "input %q", tt.in)
	}
}
