package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/monarch-mcp/pkg/monarch"
)

// RegisterTools registers the full tool catalog on the given server.
func RegisterTools(server *mcp.Server, d *Dispatcher) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "setup_authentication",
		Description: "Get instructions for authenticating with Monarch Money.",
	}, d.setupAuthentication)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_auth_status",
		Description: "Report whether a usable Monarch Money session is loaded.",
	}, d.checkAuthStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "List all linked accounts with balances, types, and institutions.",
	}, d.getAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions",
		Description: "List transactions, optionally filtered by date range and account. Amounts are signed: positive for income, negative for expenses.",
	}, d.getTransactions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budgets",
		Description: "Get budget vs. actual spending per category.",
	}, d.getBudgets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cashflow",
		Description: "Get income/expense totals over a date range.",
	}, d.getCashflow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_account_holdings",
		Description: "Get investment holdings for one account.",
	}, d.getAccountHoldings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_transaction",
		Description: "Create a transaction. Use a negative amount for expenses and a positive amount for income.",
	}, d.createTransaction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_transaction",
		Description: "Modify an existing transaction's amount, description, category, or date.",
	}, d.updateTransaction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_accounts",
		Description: "Ask Monarch Money to refresh account data from the linked institutions.",
	}, d.refreshAccounts)
}

// setup_authentication

type setupAuthenticationInput struct{}

type setupAuthenticationOutput struct {
	Instructions string `json:"instructions" jsonschema:"Step-by-step authentication instructions"`
}

const setupInstructions = `To authenticate with Monarch Money:

1. Run the login-setup command from a terminal:

     login-setup

2. Choose a login method:
   - Email + password (with MFA code if enabled), or
   - Paste an API token copied from an authenticated browser session
     (required for Apple/Google SSO accounts).

3. On success your session is stored in the OS keyring.

4. Restart this MCP server to pick up the new session.`

func (d *Dispatcher) setupAuthentication(ctx context.Context, req *mcp.CallToolRequest, input setupAuthenticationInput) (*mcp.CallToolResult, any, error) {
	return nil, setupAuthenticationOutput{Instructions: setupInstructions}, nil
}

// check_auth_status

type checkAuthStatusInput struct{}

type checkAuthStatusOutput struct {
	Authenticated bool   `json:"authenticated" jsonschema:"Whether a session is loaded"`
	Email         string `json:"email,omitempty" jsonschema:"Email of the authenticated user when known"`
	Message       string `json:"message" jsonschema:"Human-readable status"`
}

func (d *Dispatcher) checkAuthStatus(ctx context.Context, req *mcp.CallToolRequest, input checkAuthStatusInput) (*mcp.CallToolResult, any, error) {
	if !d.Authenticated() {
		return nil, checkAuthStatusOutput{
			Authenticated: false,
			Message:       "Not authenticated. " + reauthHint,
		}, nil
	}

	return nil, checkAuthStatusOutput{
		Authenticated: true,
		Email:         d.session.Email,
		Message:       "Authenticated and ready.",
	}, nil
}

// get_accounts

type getAccountsInput struct{}

type accountEntry struct {
	ID                string  `json:"id" jsonschema:"Account ID"`
	Name              string  `json:"name" jsonschema:"Account display name"`
	Balance           float64 `json:"balance" jsonschema:"Current balance"`
	Type              string  `json:"type,omitempty" jsonschema:"Account type (checking, savings, credit...)"`
	Subtype           string  `json:"subtype,omitempty" jsonschema:"Account subtype"`
	Institution       string  `json:"institution,omitempty" jsonschema:"Financial institution name"`
	IsHidden          bool    `json:"is_hidden" jsonschema:"Whether the account is hidden"`
	IncludeInNetWorth bool    `json:"include_in_net_worth" jsonschema:"Whether the account counts toward net worth"`
}

type getAccountsOutput struct {
	Accounts []accountEntry `json:"accounts" jsonschema:"All linked accounts"`
	Count    int            `json:"count" jsonschema:"Number of accounts"`
}

func (d *Dispatcher) getAccounts(ctx context.Context, req *mcp.CallToolRequest, input getAccountsInput) (*mcp.CallToolResult, any, error) {
	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	accounts, err := d.client.Accounts.List(ctx)
	if err != nil {
		return remoteError("get_accounts", err, ""), nil, nil
	}

	entries := make([]accountEntry, 0, len(accounts))
	for _, acc := range accounts {
		entry := accountEntry{
			ID:                acc.ID,
			Name:              acc.DisplayName,
			Balance:           acc.DisplayBalance,
			IsHidden:          acc.IsHidden,
			IncludeInNetWorth: acc.IncludeInNetWorth,
		}
		if acc.Type != nil {
			entry.Type = acc.Type.Name
		}
		if acc.Subtype != nil {
			entry.Subtype = acc.Subtype.Name
		}
		if acc.Institution != nil {
			entry.Institution = acc.Institution.Name
		}
		entries = append(entries, entry)
	}

	return nil, getAccountsOutput{Accounts: entries, Count: len(entries)}, nil
}

// get_transactions

type getTransactionsInput struct {
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of transactions to return (default 100)"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Pagination offset (default 0)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Start date in YYYY-MM-DD format"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"End date in YYYY-MM-DD format"`
	AccountID string `json:"account_id,omitempty" jsonschema:"Restrict to one account"`
}

type transactionEntry struct {
	ID          string   `json:"id" jsonschema:"Transaction ID"`
	Date        string   `json:"date" jsonschema:"Transaction date (YYYY-MM-DD)"`
	Amount      float64  `json:"amount" jsonschema:"Signed amount: positive income, negative expense"`
	Description string   `json:"description,omitempty" jsonschema:"Transaction description"`
	Merchant    string   `json:"merchant,omitempty" jsonschema:"Merchant name"`
	Category    string   `json:"category,omitempty" jsonschema:"Category name"`
	Account     string   `json:"account,omitempty" jsonschema:"Account display name"`
	AccountID   string   `json:"account_id,omitempty" jsonschema:"Account ID"`
	Pending     bool     `json:"pending" jsonschema:"Whether the transaction is pending"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Tag names"`
}

type getTransactionsOutput struct {
	Transactions []transactionEntry `json:"transactions" jsonschema:"Matching transactions"`
	Count        int                `json:"count" jsonschema:"Number of transactions returned"`
	TotalCount   int                `json:"total_count" jsonschema:"Total matching transactions on the server"`
	Limit        int                `json:"limit" jsonschema:"Limit applied"`
	Offset       int                `json:"offset" jsonschema:"Offset applied"`
	HasMore      bool               `json:"has_more" jsonschema:"Whether more pages exist"`
	NextOffset   int                `json:"next_offset,omitempty" jsonschema:"Offset of the next page when has_more"`
}

func (d *Dispatcher) getTransactions(ctx context.Context, req *mcp.CallToolRequest, input getTransactionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit < 0 {
		return validationError("limit must not be negative, got %d", input.Limit), nil, nil
	}
	if input.Offset < 0 {
		return validationError("offset must not be negative, got %d", input.Offset), nil, nil
	}

	var startDate, endDate time.Time
	if input.StartDate != "" {
		parsed, err := monarch.ParseDate(input.StartDate)
		if err != nil {
			return validationError("start_date: %v", err), nil, nil
		}
		startDate = parsed.Time
	}
	if input.EndDate != "" {
		parsed, err := monarch.ParseDate(input.EndDate)
		if err != nil {
			return validationError("end_date: %v", err), nil, nil
		}
		endDate = parsed.Time
	}
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		return validationError("end_date %s is before start_date %s", input.EndDate, input.StartDate), nil, nil
	}

	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	limit := input.Limit
	if limit == 0 {
		limit = monarch.DefaultTransactionLimit
	}

	query := d.client.Transactions.Query().Limit(limit).Offset(input.Offset)

	switch {
	case !startDate.IsZero() && !endDate.IsZero():
		query = query.Between(startDate, endDate)
	case !startDate.IsZero():
		query = query.Between(startDate, time.Now())
	case !endDate.IsZero():
		query = query.Between(endDate.AddDate(0, 0, -30), endDate)
	}

	if input.AccountID != "" {
		query = query.WithAccounts(input.AccountID)
	}

	result, err := query.Execute(ctx)
	if err != nil {
		return remoteError("get_transactions", err, input.AccountID), nil, nil
	}

	entries := make([]transactionEntry, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		entries = append(entries, shapeTransaction(tx))
	}

	return nil, getTransactionsOutput{
		Transactions: entries,
		Count:        len(entries),
		TotalCount:   result.TotalCount,
		Limit:        limit,
		Offset:       input.Offset,
		HasMore:      result.HasMore,
		NextOffset:   result.NextOffset,
	}, nil
}

// get_budgets

type getBudgetsInput struct{}

type budgetEntry struct {
	Category  string  `json:"category" jsonschema:"Budget category name"`
	Group     string  `json:"group,omitempty" jsonschema:"Category group name"`
	Budgeted  float64 `json:"budgeted" jsonschema:"Budgeted amount"`
	Spent     float64 `json:"spent" jsonschema:"Actual amount spent"`
	Remaining float64 `json:"remaining" jsonschema:"Remaining budget"`
	Rollover  bool    `json:"rollover" jsonschema:"Whether unspent budget rolls over"`
}

type getBudgetsOutput struct {
	StartDate string        `json:"start_date" jsonschema:"Start of the budget period (YYYY-MM-DD)"`
	EndDate   string        `json:"end_date" jsonschema:"End of the budget period (YYYY-MM-DD)"`
	Budgets   []budgetEntry `json:"budgets" jsonschema:"Per-category budget entries"`
	Count     int           `json:"count" jsonschema:"Number of budget entries"`
}

func (d *Dispatcher) getBudgets(ctx context.Context, req *mcp.CallToolRequest, input getBudgetsInput) (*mcp.CallToolResult, any, error) {
	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	start, end := currentMonth()

	budgets, err := d.client.Budgets.List(ctx, start, end)
	if err != nil {
		return remoteError("get_budgets", err, ""), nil, nil
	}

	entries := make([]budgetEntry, 0, len(budgets))
	for _, b := range budgets {
		entry := budgetEntry{
			Budgeted:  b.Amount,
			Spent:     b.Spent,
			Remaining: b.Remaining,
			Rollover:  b.Rollover,
		}
		if b.Category != nil {
			entry.Category = b.Category.Name
			if b.Category.Group != nil {
				entry.Group = b.Category.Group.Name
			}
		}
		entries = append(entries, entry)
	}

	return nil, getBudgetsOutput{
		StartDate: start.Format(monarch.DateFormat),
		EndDate:   end.Format(monarch.DateFormat),
		Budgets:   entries,
		Count:     len(entries),
	}, nil
}

// get_cashflow

type getCashflowInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"Start date in YYYY-MM-DD format (default: first of current month)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"End date in YYYY-MM-DD format (default: last day of current month)"`
}

type getCashflowOutput struct {
	StartDate   string  `json:"start_date" jsonschema:"Start of the range (YYYY-MM-DD)"`
	EndDate     string  `json:"end_date" jsonschema:"End of the range (YYYY-MM-DD)"`
	Income      float64 `json:"income" jsonschema:"Total income (positive)"`
	Expense     float64 `json:"expense" jsonschema:"Total expenses (negative)"`
	Savings     float64 `json:"savings" jsonschema:"Income plus expenses"`
	SavingsRate float64 `json:"savings_rate" jsonschema:"Savings as a fraction of income"`
}

func (d *Dispatcher) getCashflow(ctx context.Context, req *mcp.CallToolRequest, input getCashflowInput) (*mcp.CallToolResult, any, error) {
	start, end := currentMonth()

	if input.StartDate != "" {
		parsed, err := monarch.ParseDate(input.StartDate)
		if err != nil {
			return validationError("start_date: %v", err), nil, nil
		}
		start = parsed.Time
		end = time.Now()
	}
	if input.EndDate != "" {
		parsed, err := monarch.ParseDate(input.EndDate)
		if err != nil {
			return validationError("end_date: %v", err), nil, nil
		}
		end = parsed.Time
	}
	if end.Before(start) {
		return validationError("end_date %s is before start_date %s", end.Format(monarch.DateFormat), start.Format(monarch.DateFormat)), nil, nil
	}

	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	summary, err := d.client.Cashflow.GetSummary(ctx, start, end)
	if err != nil {
		return remoteError("get_cashflow", err, ""), nil, nil
	}

	return nil, getCashflowOutput{
		StartDate:   start.Format(monarch.DateFormat),
		EndDate:     end.Format(monarch.DateFormat),
		Income:      summary.Income,
		Expense:     summary.Expense,
		Savings:     summary.Savings,
		SavingsRate: summary.SavingsRate,
	}, nil
}

// get_account_holdings

type getAccountHoldingsInput struct {
	AccountID string `json:"account_id" jsonschema:"Account to fetch holdings for"`
}

type holdingEntry struct {
	Symbol    string  `json:"symbol,omitempty" jsonschema:"Ticker symbol"`
	Name      string  `json:"name,omitempty" jsonschema:"Security name"`
	Quantity  float64 `json:"quantity" jsonschema:"Units held"`
	Price     float64 `json:"price" jsonschema:"Latest unit price"`
	Value     float64 `json:"value" jsonschema:"Current market value"`
	CostBasis float64 `json:"cost_basis,omitempty" jsonschema:"Cost basis"`
}

type getAccountHoldingsOutput struct {
	AccountID string         `json:"account_id" jsonschema:"Account the holdings belong to"`
	Holdings  []holdingEntry `json:"holdings" jsonschema:"Investment holdings"`
	Count     int            `json:"count" jsonschema:"Number of holdings"`
}

func (d *Dispatcher) getAccountHoldings(ctx context.Context, req *mcp.CallToolRequest, input getAccountHoldingsInput) (*mcp.CallToolResult, any, error) {
	if input.AccountID == "" {
		return validationError("account_id is required"), nil, nil
	}

	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	holdings, err := d.client.Accounts.GetHoldings(ctx, input.AccountID)
	if err != nil {
		return remoteError("get_account_holdings", err, input.AccountID), nil, nil
	}

	entries := make([]holdingEntry, 0, len(holdings))
	for _, h := range holdings {
		entries = append(entries, holdingEntry{
			Symbol:    h.Symbol,
			Name:      h.Name,
			Quantity:  h.Quantity,
			Price:     h.Price,
			Value:     h.Value,
			CostBasis: h.CostBasis,
		})
	}

	return nil, getAccountHoldingsOutput{
		AccountID: input.AccountID,
		Holdings:  entries,
		Count:     len(entries),
	}, nil
}

// create_transaction

type createTransactionInput struct {
	AccountID    string   `json:"account_id" jsonschema:"Account to create the transaction in"`
	Amount       *float64 `json:"amount" jsonschema:"Signed amount: positive income, negative expense"`
	Description  string   `json:"description" jsonschema:"Transaction description"`
	Date         string   `json:"date" jsonschema:"Transaction date in YYYY-MM-DD format"`
	CategoryID   string   `json:"category_id,omitempty" jsonschema:"Category to assign"`
	MerchantName string   `json:"merchant_name,omitempty" jsonschema:"Merchant name (defaults to the description)"`
}

type createTransactionOutput struct {
	Transaction transactionEntry `json:"transaction" jsonschema:"The created transaction"`
}

func (d *Dispatcher) createTransaction(ctx context.Context, req *mcp.CallToolRequest, input createTransactionInput) (*mcp.CallToolResult, any, error) {
	if input.AccountID == "" {
		return validationError("account_id is required"), nil, nil
	}
	if input.Amount == nil {
		return validationError("amount is required"), nil, nil
	}
	if input.Description == "" {
		return validationError("description is required"), nil, nil
	}
	if input.Date == "" {
		return validationError("date is required"), nil, nil
	}
	date, err := monarch.ParseDate(input.Date)
	if err != nil {
		return validationError("date: %v", err), nil, nil
	}

	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	// Monarch requires a merchant on every transaction; the description
	// doubles as the merchant name unless one is given, in which case the
	// description is kept as the note.
	merchant := input.MerchantName
	notes := ""
	if merchant == "" {
		merchant = input.Description
	} else {
		notes = input.Description
	}

	tx, err := d.client.Transactions.Create(ctx, &monarch.CreateTransactionParams{
		Date:       date.Time,
		AccountID:  input.AccountID,
		Amount:     *input.Amount,
		Merchant:   merchant,
		CategoryID: input.CategoryID,
		Notes:      notes,
	})
	if err != nil {
		return remoteError("create_transaction", err, input.AccountID), nil, nil
	}

	return nil, createTransactionOutput{Transaction: shapeTransaction(tx)}, nil
}

// update_transaction

type updateTransactionInput struct {
	TransactionID string   `json:"transaction_id" jsonschema:"Transaction to modify"`
	Amount        *float64 `json:"amount,omitempty" jsonschema:"New signed amount"`
	Description   string   `json:"description,omitempty" jsonschema:"New description"`
	CategoryID    string   `json:"category_id,omitempty" jsonschema:"New category"`
	Date          string   `json:"date,omitempty" jsonschema:"New date in YYYY-MM-DD format"`
}

type updateTransactionOutput struct {
	Transaction transactionEntry `json:"transaction" jsonschema:"The updated transaction"`
}

func (d *Dispatcher) updateTransaction(ctx context.Context, req *mcp.CallToolRequest, input updateTransactionInput) (*mcp.CallToolResult, any, error) {
	if input.TransactionID == "" {
		return validationError("transaction_id is required"), nil, nil
	}

	params := &monarch.UpdateTransactionParams{}
	changed := false

	if input.Amount != nil {
		params.Amount = input.Amount
		changed = true
	}
	if input.Description != "" {
		params.Notes = &input.Description
		changed = true
	}
	if input.CategoryID != "" {
		params.CategoryID = &input.CategoryID
		changed = true
	}
	if input.Date != "" {
		date, err := monarch.ParseDate(input.Date)
		if err != nil {
			return validationError("date: %v", err), nil, nil
		}
		params.Date = &date.Time
		changed = true
	}

	if !changed {
		return validationError("at least one of amount, description, category_id, date is required"), nil, nil
	}

	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	tx, err := d.client.Transactions.Update(ctx, input.TransactionID, params)
	if err != nil {
		return remoteError("update_transaction", err, input.TransactionID), nil, nil
	}

	return nil, updateTransactionOutput{Transaction: shapeTransaction(tx)}, nil
}

// refresh_accounts

type refreshAccountsInput struct{}

type refreshAccountsOutput struct {
	Accepted   bool     `json:"accepted" jsonschema:"Whether the refresh request was accepted"`
	AccountIDs []string `json:"account_ids" jsonschema:"Accounts submitted for refresh"`
	Message    string   `json:"message" jsonschema:"Human-readable status"`
}

func (d *Dispatcher) refreshAccounts(ctx context.Context, req *mcp.CallToolRequest, input refreshAccountsInput) (*mcp.CallToolResult, any, error) {
	if !d.Authenticated() {
		return authNeededError(), nil, nil
	}

	refresh, err := d.client.Accounts.Refresh(ctx)
	if err != nil {
		return remoteError("refresh_accounts", err, ""), nil, nil
	}

	return nil, refreshAccountsOutput{
		Accepted:   true,
		AccountIDs: refresh.AccountIDs,
		Message:    "Refresh requested. Account data syncs in the background; re-fetch accounts in a minute or two.",
	}, nil
}

// shapeTransaction flattens a client transaction into the tool output
// shape. The description is the note when present, else the merchant name.
func shapeTransaction(tx *monarch.Transaction) transactionEntry {
	entry := transactionEntry{
		ID:      tx.ID,
		Date:    tx.Date.String(),
		Amount:  tx.Amount,
		Pending: tx.Pending,
	}

	if tx.Merchant != nil {
		entry.Merchant = tx.Merchant.Name
	}
	if tx.Notes != "" {
		entry.Description = tx.Notes
	} else {
		entry.Description = entry.Merchant
	}
	if tx.Category != nil {
		entry.Category = tx.Category.Name
	}
	if tx.Account != nil {
		entry.Account = tx.Account.DisplayName
		entry.AccountID = tx.Account.ID
	}
	for _, tag := range tx.Tags {
		entry.Tags = append(entry.Tags, tag.Name)
	}

	return entry
}
