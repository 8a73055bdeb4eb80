package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/eshaffer321/monarch-mcp/internal/session"
	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

// sessionStore is the slice of session.Store the setup flow needs.
type sessionStore interface {
	Save(*monarch.Session) error
}

// setupIO bundles the interactive channels so the flow is testable.
type setupIO struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func(prompt string) (string, error)
}

type authMethod string

const (
	methodPassword authMethod = "password"
	methodToken    authMethod = "token"
)

// runSetup drives the one-time interactive login and persists the session.
// The store is only written after a successful connection test; any failure
// leaves it untouched.
func runSetup(ctx context.Context, io *setupIO, newClient func(token string) (*monarch.Client, error), store sessionStore) error {
	fmt.Fprintln(io.out, "Monarch Money MCP setup")
	fmt.Fprintln(io.out, "This authenticates you once and stores the session in your OS keyring.")
	fmt.Fprintln(io.out)

	method, err := chooseAuthMethod(io)
	if err != nil {
		return err
	}

	var (
		client *monarch.Client
		sess   *monarch.Session
	)

	switch method {
	case methodPassword:
		client, sess, err = passwordLogin(ctx, io, newClient)
	case methodToken:
		client, sess, err = tokenLogin(io, newClient)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(io.out, "\nTesting connection...")
	accounts, err := client.Accounts.List(ctx)
	if err != nil {
		printConnectionHelp(io.out, method)
		return errors.Wrap(err, "connection test failed")
	}
	fmt.Fprintf(io.out, "Found %d accounts.\n", len(accounts))

	if err := store.Save(sess); err != nil {
		return errors.Wrap(err, "could not save session to keyring")
	}

	fmt.Fprintln(io.out, "\nSetup complete. The session is stored in your OS keyring.")
	fmt.Fprintln(io.out, "Restart the monarch-mcp server, then use the tools from your MCP client:")
	fmt.Fprintln(io.out, "  get_accounts, get_transactions, get_budgets, get_cashflow,")
	fmt.Fprintln(io.out, "  get_account_holdings, create_transaction, update_transaction, refresh_accounts")
	return nil
}

// chooseAuthMethod presents the method menu. Default is password login;
// token import is for Apple/Google SSO accounts the API cannot log in
// directly.
func chooseAuthMethod(io *setupIO) (authMethod, error) {
	fmt.Fprintln(io.out, "Login methods:")
	fmt.Fprintln(io.out, "  1) Email + password (Monarch account password)")
	fmt.Fprintln(io.out, "  2) Apple/Google SSO (paste a Monarch token from your browser session)")
	fmt.Fprint(io.out, "Choose (1/2) [1]: ")

	line, err := io.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "failed to read choice")
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "2", "token", "sso", "apple", "google":
		return methodToken, nil
	default:
		return methodPassword, nil
	}
}

// passwordLogin runs the email/password flow, prompting for an MFA code if
// the account requires one.
func passwordLogin(ctx context.Context, io *setupIO, newClient func(token string) (*monarch.Client, error)) (*monarch.Client, *monarch.Session, error) {
	fmt.Fprint(io.out, "Email: ")
	email, err := io.in.ReadString('\n')
	if err != nil && email == "" {
		return nil, nil, errors.Wrap(err, "failed to read email")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil, errors.New("no email provided")
	}

	password, err := io.readSecret("Password: ")
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read password")
	}
	if password == "" {
		return nil, nil, errors.New("no password provided")
	}

	client, err := newClient("")
	if err != nil {
		return nil, nil, err
	}

	err = client.Auth.Login(ctx, email, password)
	if errors.Is(err, monarch.ErrMFARequired) {
		fmt.Fprintln(io.out, "MFA code required.")
		fmt.Fprint(io.out, "Two-factor code: ")
		code, readErr := io.in.ReadString('\n')
		if readErr != nil && code == "" {
			return nil, nil, errors.Wrap(readErr, "failed to read MFA code")
		}
		err = client.Auth.LoginWithMFA(ctx, email, password, strings.TrimSpace(code))
	}
	if err != nil {
		if errors.Is(err, monarch.ErrLoginFailed) {
			return nil, nil, errors.New("login failed: check your email and password, then try again")
		}
		return nil, nil, errors.Wrap(err, "login failed")
	}

	fmt.Fprintln(io.out, "Login successful.")

	sess, err := client.Auth.GetSession()
	if err != nil {
		return nil, nil, errors.Wrap(err, "login succeeded but no session was returned")
	}

	return client, sess, nil
}

// tokenLogin imports a token copied from an authenticated browser session.
func tokenLogin(io *setupIO, newClient func(token string) (*monarch.Client, error)) (*monarch.Client, *monarch.Session, error) {
	printTokenInstructions(io.out)

	raw, err := io.readSecret("Paste Monarch token (input hidden): ")
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read token")
	}

	token := session.NormalizeToken(raw)
	if token == "" {
		return nil, nil, errors.New("no token provided; re-run and paste a token")
	}

	client, err := newClient(token)
	if err != nil {
		return nil, nil, err
	}

	return client, &monarch.Session{Token: token}, nil
}

func printTokenInstructions(out io.Writer) {
	fmt.Fprintln(out, "\nApple/Google SSO token import")
	fmt.Fprintln(out, "Monarch's API cannot perform SSO directly. Log in normally in your")
	fmt.Fprintln(out, "browser, then copy the API token from a network request:")
	fmt.Fprintln(out, "  1) Open https://app.monarchmoney.com and sign in")
	fmt.Fprintln(out, "  2) Open DevTools -> Network tab")
	fmt.Fprintln(out, "  3) Click any request to api.monarchmoney.com/graphql")
	fmt.Fprintln(out, "  4) In Request Headers, find 'Authorization' and copy the value")
	fmt.Fprintln(out, "     after 'Bearer ' or 'Token '")
	fmt.Fprintln(out, "You can paste the raw token or the whole header line.")
}

func printConnectionHelp(out io.Writer, method authMethod) {
	if method == methodToken {
		fmt.Fprintln(out, "\nToken login failed. Common causes:")
		fmt.Fprintln(out, "  - You copied the wrong value (copy the part AFTER 'Bearer ')")
		fmt.Fprintln(out, "  - The token expired; refresh the page and copy a new one")
		return
	}
	fmt.Fprintln(out, "\nConnection test failed. Check your network and re-run login-setup.")
}
