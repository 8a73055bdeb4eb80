// Command monarch-mcp runs the Monarch Money MCP tool server over stdio.
//
// On startup it loads the cached session written by login-setup (or a
// MONARCH_TOKEN environment override). Without a session the server still
// runs, but every data tool answers with an authentication-needed error
// pointing at login-setup.
package main

import (
	"context"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/monarch-mcp/internal/mcpserver"
	"github.com/eshaffer321/monarch-mcp/internal/session"
	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

func main() {
	// stdout is the MCP transport; keep logging on stderr.
	log.SetOutput(os.Stderr)

	sess := loadSession()

	client, err := monarch.NewClient(&monarch.ClientOptions{
		BaseURL:   os.Getenv("MONARCH_BASE_URL"),
		SentryDSN: os.Getenv("MONARCH_SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("failed to initialize Monarch Money client: %v", err)
	}
	defer client.Close()

	if sess != nil {
		client.SetSession(sess)
	} else {
		log.Println("no session loaded; run login-setup to authenticate")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "monarch-money",
		Version: "1.0.0",
	}, nil)

	mcpserver.RegisterTools(server, mcpserver.NewDispatcher(client, sess))

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadSession resolves the session once, before any tool handler runs:
// MONARCH_TOKEN wins, then the OS keyring, else nil.
func loadSession() *monarch.Session {
	if token := os.Getenv("MONARCH_TOKEN"); token != "" {
		return &monarch.Session{Token: token}
	}

	sess, err := session.NewStore().Load()
	if err != nil {
		log.Printf("failed to read session from keyring: %v", err)
		return nil
	}
	return sess
}
