// Package mcpserver exposes Monarch Money data as MCP tools. Each tool
// validates its arguments locally, gates on the cached session, forwards a
// single call to the Monarch client and reshapes the response. Tool
// failures come back as error results, never as a crashed server.
package mcpserver

import (
	"time"

	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

// Dispatcher owns the authenticated client and the session loaded at
// startup. The session is read-only after construction; re-running the
// login-setup command and restarting the server is the only way to move
// from unauthenticated to authenticated.
type Dispatcher struct {
	client  *monarch.Client
	session *monarch.Session
}

// NewDispatcher creates a dispatcher. session may be nil, in which case
// every data tool answers with an authentication-needed error.
func NewDispatcher(client *monarch.Client, session *monarch.Session) *Dispatcher {
	return &Dispatcher{
		client:  client,
		session: session,
	}
}

// Authenticated reports whether a session was loaded at startup.
func (d *Dispatcher) Authenticated() bool {
	return d.session != nil && d.session.Token != ""
}

// currentMonth returns the first and last day of the current calendar
// month, the default range for budget and cashflow tools.
func currentMonth() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
