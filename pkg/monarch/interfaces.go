package monarch

import (
	"context"
	"time"
)

// AccountService handles account-related operations
type AccountService interface {
	// List retrieves all accounts
	List(ctx context.Context) ([]*Account, error)

	// GetHoldings retrieves investment holdings for an account
	GetHoldings(ctx context.Context, accountID string) ([]*Holding, error)

	// Refresh requests a remote data refresh for the given accounts, or
	// all accounts when none are specified. Fire and forget; the remote
	// service syncs in the background.
	Refresh(ctx context.Context, accountIDs ...string) (*RefreshRequest, error)

	// IsRefreshComplete checks if no sync is in progress for the accounts
	IsRefreshComplete(ctx context.Context, accountIDs ...string) (bool, error)
}

// TransactionService handles transaction-related operations
type TransactionService interface {
	// Query returns a transaction query builder
	Query() TransactionQueryBuilder

	// Get retrieves a single transaction
	Get(ctx context.Context, transactionID string) (*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error)

	// Update updates an existing transaction
	Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error)
}

// TransactionQueryBuilder builds transaction queries
type TransactionQueryBuilder interface {
	Between(start, end time.Time) TransactionQueryBuilder
	WithAccounts(accountIDs ...string) TransactionQueryBuilder
	Limit(limit int) TransactionQueryBuilder
	Offset(offset int) TransactionQueryBuilder

	// Execute runs the query
	Execute(ctx context.Context) (*TransactionList, error)
}

// BudgetService handles budget operations
type BudgetService interface {
	// List retrieves budgets for a date range
	List(ctx context.Context, startDate, endDate time.Time) ([]*Budget, error)
}

// CashflowService handles cashflow analysis
type CashflowService interface {
	// GetSummary retrieves income/expense totals for a date range
	GetSummary(ctx context.Context, startDate, endDate time.Time) (*CashflowSummary, error)
}

// AuthService handles authentication
type AuthService interface {
	// Login performs authentication. Returns ErrMFARequired when the
	// account has MFA enabled.
	Login(ctx context.Context, email, password string) error

	// LoginWithMFA performs login with an MFA code
	LoginWithMFA(ctx context.Context, email, password, mfaCode string) error

	// GetSession returns the current session
	GetSession() (*Session, error)
}
