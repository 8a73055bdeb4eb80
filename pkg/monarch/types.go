package monarch

import (
	"time"
)

// Account represents a financial account
type Account struct {
	ID                   string              `json:"id"`
	DisplayName          string              `json:"displayName"`
	SyncDisabled         bool                `json:"syncDisabled"`
	IsHidden             bool                `json:"isHidden"`
	IsAsset              bool                `json:"isAsset"`
	Mask                 string              `json:"mask"`
	CurrentBalance       float64             `json:"currentBalance"`
	DisplayBalance       float64             `json:"displayBalance"`
	IncludeInNetWorth    bool                `json:"includeInNetWorth"`
	IsManual             bool                `json:"isManual"`
	DisplayLastUpdatedAt time.Time           `json:"displayLastUpdatedAt"`
	Type                 *AccountTypeInfo    `json:"type"`
	Subtype              *AccountSubtypeInfo `json:"subtype"`
	Institution          *Institution        `json:"institution"`
}

// AccountTypeInfo represents account type information
type AccountTypeInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// AccountSubtypeInfo represents account subtype information
type AccountSubtypeInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// Institution represents a financial institution
type Institution struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Merchant represents a merchant
type Merchant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction represents a financial transaction.
/// Amounts are signed: positive for income/credits, negative for
// expenses/debits, matching the Monarch API convention.
type Transaction struct {
	ID              string               `json:"id"`
	Date            Date                 `json:"date"`
	Amount          float64              `json:"amount"`
	Pending         bool                 `json:"pending"`
	HideFromReports bool                 `json:"hideFromReports"`
	PlaidName       string               `json:"plaidName"`
	Merchant        *Merchant            `json:"merchant"`
	Notes           string               `json:"notes"`
	IsRecurring     bool                 `json:"isRecurring"`
	NeedsReview     bool                 `json:"needsReview"`
	Account         *Account             `json:"account"`
	Category        *TransactionCategory `json:"category"`
	Tags            []*Tag               `json:"tags"`
}

// TransactionCategory represents a transaction category
type TransactionCategory struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Group *CategoryGroup `json:"group"`
}

// CategoryGroup represents a category group
type CategoryGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Tag represents a transaction tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionList represents paginated transaction results
type TransactionList struct {
	Transactions []*Transaction `json:"transactions"`
	TotalCount   int            `json:"totalCount"`
	HasMore      bool           `json:"hasMore"`
	NextOffset   int            `json:"nextOffset"`
}

// Budget represents a budget entry for one category
type Budget struct {
	ID                 string               `json:"id"`
	CategoryID         string               `json:"categoryId"`
	Category           *TransactionCategory `json:"category"`
	Amount             float64              `json:"amount"`
	Rollover           bool                 `json:"rollover"`
	StartDate          Date                 `json:"startDate"`
	EndDate            Date                 `json:"endDate"`
	Spent              float64              `json:"spent"`
	Remaining          float64              `json:"remaining"`
	PercentageComplete float64              `json:"percentageComplete"`
}

// CashflowSummary represents income/expense totals over a range.
// Expense is negative, Income positive; Savings = Income + Expense.
type CashflowSummary struct {
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Income      float64   `json:"income"`
	Expense     float64   `json:"expense"`
	Savings     float64   `json:"savings"`
	SavingsRate float64   `json:"savingsRate"`
}

// Holding represents an investment holding
type Holding struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Value     float64   `json:"value"`
	CostBasis float64   `json:"costBasis"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefreshRequest reports a refresh request accepted by the remote service.
type RefreshRequest struct {
	AccountIDs []string  `json:"accountIds"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Session represents an authenticated session
type Session struct {
	Token      string    `json:"token"`
	Email      string    `json:"email,omitempty"`
	DeviceUUID string    `json:"deviceUuid,omitempty"`
	SavedAt    time.Time `json:"savedAt,omitempty"`
}

// CreateTransactionParams for creating transactions
type CreateTransactionParams struct {
	Date       time.Time `json:"date"`
	AccountID  string    `json:"accountId"`
	Amount     float64   `json:"amount"`
	Merchant   string    `json:"merchant"`
	CategoryID string    `json:"categoryId"`
	Notes      string    `json:"notes"`
}

// UpdateTransactionParams for updating transactions; nil fields are left
// unchanged.
type UpdateTransactionParams struct {
	Date       *time.Time `json:"date,omitempty"`
	Amount     *float64   `json:"amount,omitempty"`
	Merchant   *string    `json:"merchant,omitempty"`
	CategoryID *string    `json:"categoryId,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}
