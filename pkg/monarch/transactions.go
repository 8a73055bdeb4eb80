package monarch

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// DefaultTransactionLimit is the page size used when a query does not set
// its own limit.
const DefaultTransactionLimit = 100

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// Query returns a transaction query builder
func (s *transactionService) Query() TransactionQueryBuilder {
	return &transactionQueryBuilder{
		client:  s.client,
		filters: make(map[string]interface{}),
		limit:   DefaultTransactionLimit,
	}
}

// Get retrieves a single transaction
func (s *transactionService) Get(ctx context.Context, transactionID string) (*Transaction, error) {
	query := s.client.loadQuery("transactions/get.graphql")

	variables := map[string]interface{}{
		"id": transactionID,
	}

	var result struct {
		GetTransaction *Transaction `json:"getTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	if result.GetTransaction == nil {
		return nil, ErrNotFound
	}

	return result.GetTransaction, nil
}

// Create creates a new transaction
func (s *transactionService) Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error) {
	query := s.client.loadQuery("transactions/create.graphql")

	input := map[string]interface{}{
		"date":       params.Date.Format(DateFormat),
		"accountId":  params.AccountID,
		"amount":     params.Amount,
		"merchant":   params.Merchant,
		"categoryId": params.CategoryID,
	}

	if params.Notes != "" {
		input["notes"] = params.Notes
	}

	variables := map[string]interface{}{
		"input": input,
	}

	var result struct {
		CreateTransaction struct {
			Transaction *struct {
				ID string `json:"id"`
			} `json:"transaction"`
			Errors []struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"errors"`
		} `json:"createTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	if len(result.CreateTransaction.Errors) > 0 {
		return nil, &Error{
			Code:    result.CreateTransaction.Errors[0].Code,
			Message: result.CreateTransaction.Errors[0].Message,
		}
	}

	if result.CreateTransaction.Transaction == nil {
		return nil, errors.New("no transaction returned from creation")
	}

	// The mutation returns only the id; fetch the full record.
	return s.Get(ctx, result.CreateTransaction.Transaction.ID)
}

// Update updates an existing transaction
func (s *transactionService) Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error) {
	query := s.client.loadQuery("transactions/update.graphql")

	input := map[string]interface{}{
		"id": transactionID,
	}

	if params.Date != nil {
		input["date"] = params.Date.Format(DateFormat)
	}
	if params.Amount != nil {
		input["amount"] = *params.Amount
	}
	if params.Merchant != nil {
		input["merchant"] = *params.Merchant
	}
	if params.CategoryID != nil {
		input["categoryId"] = *params.CategoryID
	}
	if params.Notes != nil {
		input["notes"] = *params.Notes
	}

	variables := map[string]interface{}{
		"input": input,
	}

	var result struct {
		UpdateTransaction struct {
			Transaction *Transaction `json:"transaction"`
			Errors      []struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"errors"`
		} `json:"updateTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to update transaction")
	}

	if len(result.UpdateTransaction.Errors) > 0 {
		return nil, &Error{
			Code:    result.UpdateTransaction.Errors[0].Code,
			Message: result.UpdateTransaction.Errors[0].Message,
		}
	}

	if result.UpdateTransaction.Transaction == nil {
		return nil, ErrNotFound
	}

	return result.UpdateTransaction.Transaction, nil
}

// transactionQueryBuilder implements TransactionQueryBuilder
type transactionQueryBuilder struct {
	client  *Client
	filters map[string]interface{}
	limit   int
	offset  int
}

// Between filters transactions by date range
func (b *transactionQueryBuilder) Between(start, end time.Time) TransactionQueryBuilder {
	b.filters["startDate"] = start.Format(DateFormat)
	b.filters["endDate"] = end.Format(DateFormat)
	return b
}

// WithAccounts filters transactions by account ids
func (b *transactionQueryBuilder) WithAccounts(accountIDs ...string) TransactionQueryBuilder {
	b.filters["accounts"] = accountIDs
	return b
}

// Limit caps the number of results
func (b *transactionQueryBuilder) Limit(limit int) TransactionQueryBuilder {
	if limit > 0 {
		b.limit = limit
	}
	return b
}

// Offset sets the pagination offset
func (b *transactionQueryBuilder) Offset(offset int) TransactionQueryBuilder {
	if offset > 0 {
		b.offset = offset
	}
	return b
}

// Execute runs the query
func (b *transactionQueryBuilder) Execute(ctx context.Context) (*TransactionList, error) {
	query := b.client.loadQuery("transactions/list.graphql")

	variables := map[string]interface{}{
		"offset":  b.offset,
		"limit":   b.limit,
		"orderBy": "date",
	}

	if len(b.filters) > 0 {
		variables["filters"] = b.filters
	}

	var result struct {
		AllTransactions struct {
			TotalCount int            `json:"totalCount"`
			Results    []*Transaction `json:"results"`
		} `json:"allTransactions"`
	}

	if err := b.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to query transactions")
	}

	list := &TransactionList{
		Transactions: result.AllTransactions.Results,
		TotalCount:   result.AllTransactions.TotalCount,
	}

	if b.offset+len(list.Transactions) < list.TotalCount {
		list.HasMore = true
		list.NextOffset = b.offset + len(list.Transactions)
	}

	return list, nil
}
