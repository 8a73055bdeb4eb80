package monarch

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// cashflowService implements the CashflowService interface
type cashflowService struct {
	client *Client
}

// GetSummary retrieves income/expense totals for a date range
func (s *cashflowService) GetSummary(ctx context.Context, startDate, endDate time.Time) (*CashflowSummary, error) {
	query := s.client.loadQuery("cashflow/summary.graphql")

	variables := map[string]interface{}{
		"startDate": startDate.Format(DateFormat),
		"endDate":   endDate.Format(DateFormat),
	}

	var result struct {
		Aggregates []struct {
			Summary struct {
				SumIncome   float64 `json:"sumIncome"`
				SumExpense  float64 `json:"sumExpense"`
				Savings     float64 `json:"savings"`
				SavingsRate float64 `json:"savingsRate"`
			} `json:"summary"`
		} `json:"aggregates"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get cashflow summary")
	}

	if len(result.Aggregates) == 0 {
		return &CashflowSummary{
			StartDate: startDate,
			EndDate:   endDate,
		}, nil
	}

	summary := result.Aggregates[0].Summary
	return &CashflowSummary{
		StartDate:   startDate,
		EndDate:     endDate,
		Income:      summary.SumIncome,
		Expense:     -summary.SumExpense,
		Savings:     summary.Savings,
		SavingsRate: summary.SavingsRate,
	}, nil
}
