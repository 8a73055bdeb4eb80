// Command login-setup performs the one-time interactive Monarch Money
// login (email/password with MFA, or a pasted SSO token) and stores the
// resulting session in the OS keyring for the monarch-mcp server.
//
// Exits 0 after the session is written, non-zero on any failure. Nothing
// is persisted unless the whole flow, including a connection test,
// succeeds.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/eshaffer321/monarch-mcp/internal/session"
	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

func main() {
	io := &setupIO{
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		readSecret: readSecret,
	}

	newClient := func(token string) (*monarch.Client, error) {
		return monarch.NewClient(&monarch.ClientOptions{
			BaseURL: os.Getenv("MONARCH_BASE_URL"),
			Token:   token,
		})
	}

	if err := runSetup(context.Background(), io, newClient, session.NewStore()); err != nil {
		fmt.Fprintf(os.Stderr, "\nSetup failed: %v\n", err)
		os.Exit(1)
	}
}

// readSecret prompts for a value without echoing it, like getpass.
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	value, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(value), nil
}
