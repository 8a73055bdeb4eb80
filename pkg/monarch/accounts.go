package monarch

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts
func (s *accountService) List(ctx context.Context) ([]*Account, error) {
	query := s.client.loadQuery("accounts/list.graphql")

	var result struct {
		Accounts []*Account `json:"accounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get accounts")
	}

	return result.Accounts, nil
}

// GetHoldings retrieves investment holdings for an account
func (s *accountService) GetHoldings(ctx context.Context, accountID string) ([]*Holding, error) {
	query := s.client.loadQuery("accounts/holdings.graphql")

	variables := map[string]interface{}{
		"accountId": accountID,
	}

	var result struct {
		Account *struct {
			ID       string `json:"id"`
			Holdings struct {
				Edges []struct {
					Node struct {
						ID        string    `json:"id"`
						Quantity  float64   `json:"quantity"`
						Price     float64   `json:"price"`
						Value     float64   `json:"value"`
						CostBasis float64   `json:"costBasis"`
						UpdatedAt time.Time `json:"updatedAt"`
						Holding   struct {
							Ticker string `json:"ticker"`
							Name   string `json:"name"`
						} `json:"holding"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"holdings"`
		} `json:"account"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get account holdings")
	}

	if result.Account == nil {
		return nil, ErrNotFound
	}

	var holdings []*Holding
	for _, edge := range result.Account.Holdings.Edges {
		holdings = append(holdings, &Holding{
			ID:        edge.Node.ID,
			AccountID: accountID,
			Symbol:    edge.Node.Holding.Ticker,
			Name:      edge.Node.Holding.Name,
			Quantity:  edge.Node.Quantity,
			Price:     edge.Node.Price,
			Value:     edge.Node.Value,
			CostBasis: edge.Node.CostBasis,
			UpdatedAt: edge.Node.UpdatedAt,
		})
	}

	return holdings, nil
}

// Refresh requests a remote refresh for the given accounts, or all accounts
// when none are specified.
func (s *accountService) Refresh(ctx context.Context, accountIDs ...string) (*RefreshRequest, error) {
	query := s.client.loadQuery("accounts/refresh.graphql")

	if len(accountIDs) == 0 {
		accounts, err := s.List(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch accounts for refresh")
		}
		for _, acc := range accounts {
			accountIDs = append(accountIDs, acc.ID)
		}
	}

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"accountIds": accountIDs,
		},
	}

	var result struct {
		ForceRefreshAccounts struct {
			Success bool `json:"success"`
			Errors  []struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"errors"`
		} `json:"forceRefreshAccounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to request accounts refresh")
	}

	if len(result.ForceRefreshAccounts.Errors) > 0 {
		return nil, &Error{
			Code:    result.ForceRefreshAccounts.Errors[0].Code,
			Message: result.ForceRefreshAccounts.Errors[0].Message,
		}
	}

	if !result.ForceRefreshAccounts.Success {
		return nil, errors.New("refresh request was not accepted")
	}

	return &RefreshRequest{
		AccountIDs:  accountIDs,
		RequestedAt: time.Now(),
	}, nil
}

// IsRefreshComplete checks if no sync is in progress for the accounts
func (s *accountService) IsRefreshComplete(ctx context.Context, accountIDs ...string) (bool, error) {
	query := s.client.loadQuery("accounts/is_refresh_complete.graphql")

	var result struct {
		Accounts []struct {
			ID                string `json:"id"`
			HasSyncInProgress bool   `json:"hasSyncInProgress"`
		} `json:"accounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return false, errors.Wrap(err, "failed to check refresh status")
	}

	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}

	for _, account := range result.Accounts {
		if len(wanted) > 0 && !wanted[account.ID] {
			continue
		}
		if account.HasSyncInProgress {
			return false, nil
		}
	}

	return true, nil
}
