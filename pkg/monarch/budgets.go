package monarch

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// List retrieves budgets for a date range
func (s *budgetService) List(ctx context.Context, startDate, endDate time.Time) ([]*Budget, error) {
	query := s.client.loadQuery("budgets/list.graphql")

	variables := map[string]interface{}{
		"startDate": startDate.Format(DateFormat),
		"endDate":   endDate.Format(DateFormat),
		"useV2":     true,
	}

	var result struct {
		Budgets []*Budget `json:"budgets"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budgets")
	}

	return result.Budgets, nil
}
