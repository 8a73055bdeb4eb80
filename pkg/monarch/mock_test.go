package monarch

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/eshaffer321/monarch-mcp/internal/graphql"
	internalTypes "github.com/eshaffer321/monarch-mcp/internal/types"
)

// MockTransport is a testify mock for the Transport interface. Expectations
// return the data portion of a GraphQL response as a JSON string; Execute
// unmarshals it into the caller's result.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	args := m.Called(ctx, query, variables, result)

	if data, ok := args.Get(0).(string); ok && data != "" && result != nil {
		if err := json.Unmarshal([]byte(data), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func (m *MockTransport) SetSession(session *internalTypes.Session) {
	m.Called(session)
}

// newTestClient builds a client wired to the given mock transport.
func newTestClient(t *MockTransport) *Client {
	c := &Client{
		transport:   t,
		queryLoader: graphql.NewQueryLoader(),
		options:     &ClientOptions{},
		baseURL:     "https://api.test.com",
	}
	c.initServices()
	return c
}
