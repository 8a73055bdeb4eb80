package monarch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"accounts": [
			{
				"id": "acc-123",
				"displayName": "Checking",
				"displayBalance": 1500.25,
				"currentBalance": 1500.25,
				"includeInNetWorth": true,
				"type": {"name": "depository", "display": "Cash"},
				"subtype": {"name": "checking", "display": "Checking"},
				"institution": {"id": "inst-1", "name": "Test Bank", "status": "OK"}
			},
			{
				"id": "acc-456",
				"displayName": "Brokerage",
				"displayBalance": 9100.00,
				"isHidden": true,
				"type": {"name": "brokerage", "display": "Investments"}
			}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	accounts, err := client.Accounts.List(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "acc-123", accounts[0].ID)
	assert.Equal(t, "Checking", accounts[0].DisplayName)
	assert.Equal(t, 1500.25, accounts[0].DisplayBalance)
	assert.Equal(t, "Test Bank", accounts[0].Institution.Name)
	assert.True(t, accounts[1].IsHidden)
	assert.Nil(t, accounts[1].Institution)

	mockTransport.AssertExpectations(t)
}

func TestAccountService_GetHoldings(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockResponse := `{
		"account": {
			"id": "acc-456",
			"holdings": {
				"edges": [
					{
						"node": {
							"id": "hold-1",
							"quantity": 10,
							"price": 150.50,
							"value": 1505.00,
							"costBasis": 1200.00,
							"updatedAt": "2024-01-15T00:00:00Z",
							"holding": {"ticker": "VTI", "name": "Vanguard Total Stock Market ETF"}
						}
					}
				]
			}
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(v map[string]interface{}) bool {
			return v["accountId"] == "acc-456"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	holdings, err := client.Accounts.GetHoldings(context.Background(), "acc-456")

	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "VTI", holdings[0].Symbol)
	assert.Equal(t, "acc-456", holdings[0].AccountID)
	assert.Equal(t, 10.0, holdings[0].Quantity)
	assert.Equal(t, 1505.00, holdings[0].Value)

	mockTransport.AssertExpectations(t)
}

func TestAccountService_GetHoldings_AccountMissing(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Execute",
		mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything,
	).Return(`{"account": null}`, nil)

	_, err := client.Accounts.GetHoldings(context.Background(), "acc-gone")

	assert.ErrorIs(t, err, ErrNotFound)
	mockTransport.AssertExpectations(t)
}

func TestAccountService_Refresh(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(v map[string]interface{}) bool {
			input, ok := v["input"].(map[string]interface{})
			if !ok {
				return false
			}
			ids, ok := input["accountIds"].([]string)
			return ok && len(ids) == 2
		}),
		mock.Anything,
	).Return(`{"forceRefreshAccounts": {"success": true}}`, nil)

	refresh, err := client.Accounts.Refresh(context.Background(), "acc-123", "acc-456")

	require.NoError(t, err)
	assert.Equal(t, []string{"acc-123", "acc-456"}, refresh.AccountIDs)
	assert.False(t, refresh.RequestedAt.IsZero())

	mockTransport.AssertExpectations(t)
}

func TestAccountService_Refresh_Rejected(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Execute",
		mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything,
	).Return(`{"forceRefreshAccounts": {"success": false, "errors": [{"message": "too many requests", "code": "RATE_LIMITED"}]}}`, nil)

	_, err := client.Accounts.Refresh(context.Background(), "acc-123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many requests")

	mockTransport.AssertExpectations(t)
}

func TestAccountService_IsRefreshComplete(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Execute",
		mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything,
	).Return(`{"accounts": [
		{"id": "acc-123", "hasSyncInProgress": false},
		{"id": "acc-456", "hasSyncInProgress": true}
	]}`, nil)

	// Only asking about acc-123, which is done.
	complete, err := client.Accounts.IsRefreshComplete(context.Background(), "acc-123")
	require.NoError(t, err)
	assert.True(t, complete)

	// Asking about all accounts; acc-456 is still syncing.
	complete, err = client.Accounts.IsRefreshComplete(context.Background())
	require.NoError(t, err)
	assert.False(t, complete)
}
