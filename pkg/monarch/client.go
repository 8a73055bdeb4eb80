// Package monarch is a client for the Monarch Money API, covering the
// surface the MCP adapter exposes: accounts, transactions, budgets,
// cashflow and authentication.
package monarch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/eshaffer321/monarch-mcp/internal/graphql"
	"github.com/eshaffer321/monarch-mcp/internal/transport"
	internalTypes "github.com/eshaffer321/monarch-mcp/internal/types"
	"github.com/getsentry/sentry-go"
)

const (
	// DefaultBaseURL is the default Monarch Money API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout
)

// Client is the Monarch Money API client. The service fields are exported
// interfaces so callers can substitute stubs in tests.
type Client struct {
	Accounts     AccountService
	Transactions TransactionService
	Budgets      BudgetService
	Cashflow     CashflowService
	Auth         AuthService

	baseURL     string
	httpClient  *http.Client
	transport   Transport
	options     *ClientOptions
	session     *Session
	queryLoader *graphql.QueryLoader
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Transport handles HTTP/GraphQL communication
type Transport interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error
	SetAuth(token string)
	SetSession(session *internalTypes.Session)
}

// NewClient creates a new Monarch Money client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: "production",
		})
		if err != nil && opts.Logger != nil {
			// Sentry is best effort; the client works without it.
			opts.Logger.Error("Failed to initialize Sentry", "error", err)
		}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	trans := transport.NewGraphQLTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
	})

	if opts.Token != "" {
		trans.SetAuth(opts.Token)
	}

	c := &Client{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		transport:   trans,
		options:     opts,
		queryLoader: graphql.NewQueryLoader(),
	}

	if opts.Token != "" {
		c.session = &Session{Token: opts.Token}
	}

	c.initServices()

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Transactions = &transactionService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Cashflow = &cashflowService{client: c}
	c.Auth = newAuthService(c)
}

// SetSession installs an existing session on the client and transport.
func (c *Client) SetSession(session *Session) {
	c.session = session
	if session == nil {
		c.transport.SetSession(nil)
		return
	}
	c.transport.SetSession(&internalTypes.Session{
		Token:      session.Token,
		Email:      session.Email,
		DeviceUUID: session.DeviceUUID,
		SavedAt:    session.SavedAt,
	})
}

// GetSession returns the current session
func (c *Client) GetSession() *Session {
	return c.session
}

// loadQuery loads a GraphQL query from the embedded filesystem
func (c *Client) loadQuery(queryPath string) string {
	return c.queryLoader.MustLoad(queryPath)
}

// executeGraphQL executes a GraphQL query, reporting failures to Sentry
// when it is configured.
func (c *Client) executeGraphQL(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	start := time.Now()
	err := c.transport.Execute(ctx, query, variables, result)
	duration := time.Since(start)

	if err != nil && c.options.SentryDSN != "" {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("graphql.operation", extractOperationName(query))
			scope.SetContext("graphql", map[string]interface{}{
				"variables": variables,
				"duration":  duration.String(),
			})
			sentry.CaptureException(err)
		})
	}

	return err
}

// Close flushes any pending Sentry events
func (c *Client) Close() {
	if c.options != nil && c.options.SentryDSN != "" {
		sentry.Flush(2 * time.Second)
	}
}

// extractOperationName extracts the GraphQL operation name from a query
func extractOperationName(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		if f != "query" && f != "mutation" {
			continue
		}
		if i+1 >= len(fields) {
			break
		}
		name := fields[i+1]
		if idx := strings.IndexAny(name, "({"); idx > 0 {
			name = name[:idx]
		}
		if name != "" && name != "{" {
			return name
		}
	}
	return "unknown"
}
