package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ownerBudgets returns the query for all budgets of owner, newest first.
func (s *Service) ownerBudgets(ctx context.Context, owner string) *gorm.DB {
	return s.db.WithContext(ctx).
		Where("created_by = ?", owner).
		Order("id DESC")
}

// ownerExpenses returns the query for all expenses on budgets of owner,
// newest first.
func (s *Service) ownerExpenses(ctx context.Context, owner string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("expenses.*").
		Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("budgets.created_by = ?", owner).
		Order("expenses.id DESC")
}

// Budgets returns all budgets of owner with the aggregates of their expenses,
// newest first.
//
// Amounts are summed as decimals, the database only delivers the rows.
func (s *Service) Budgets(ctx context.Context, owner string) ([]models.BudgetSummary, error) {
	budgets := []models.Budget{}
	if err := s.ownerBudgets(ctx, owner).Find(&budgets).Error; err != nil {
		return nil, s.infrastructure(err, "load", "budgets")
	}

	expenses := []models.Expense{}
	if err := s.ownerExpenses(ctx, owner).Find(&expenses).Error; err != nil {
		return nil, s.infrastructure(err, "load", "budgets")
	}

	byBudget := make(map[uint][]models.Expense, len(budgets))
	for _, e := range expenses {
		byBudget[e.BudgetID] = append(byBudget[e.BudgetID], e)
	}

	summaries := make([]models.BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		summaries = append(summaries, models.SummarizeBudget(b, byBudget[b.ID]))
	}

	return summaries, nil
}

// Budget returns a budget of owner with its aggregates and all of its expenses.
func (s *Service) Budget(ctx context.Context, owner string, id int64) (models.BudgetDetail, error) {
	if err := validation.ID(id, entityBudget); err != nil {
		return models.BudgetDetail{}, invalid(err)
	}

	var budgets []models.Budget
	err := s.ownerBudgets(ctx, owner).Where("id = ?", id).Limit(1).Find(&budgets).Error
	if err != nil {
		return models.BudgetDetail{}, s.infrastructure(err, "load", "budget")
	}

	if len(budgets) == 0 {
		return models.BudgetDetail{}, notFound(entityBudget)
	}

	expenses := []models.Expense{}
	err = s.db.WithContext(ctx).Where("budget_id = ?", id).Order("id DESC").Find(&expenses).Error
	if err != nil {
		return models.BudgetDetail{}, s.infrastructure(err, "load", "expenses")
	}

	return models.BudgetDetail{
		BudgetSummary: models.SummarizeBudget(budgets[0], expenses),
		Expenses:      expenses,
	}, nil
}

// Incomes returns all incomes of owner, newest first.
func (s *Service) Incomes(ctx context.Context, owner string) ([]models.IncomeSummary, error) {
	incomes := []models.Income{}
	err := s.db.WithContext(ctx).
		Where("created_by = ?", owner).
		Order("id DESC").
		Find(&incomes).
		Error
	if err != nil {
		return nil, s.infrastructure(err, "load", "incomes")
	}

	summaries := make([]models.IncomeSummary, 0, len(incomes))
	for _, i := range incomes {
		summaries = append(summaries, models.SummarizeIncome(i))
	}

	return summaries, nil
}

// Expenses returns all expenses on budgets of owner, newest first.
//
// If match is not empty, only expenses with a matching name are returned.
// match is a case insensitive glob pattern with * as wildcard. A pattern
// without wildcards matches names containing it.
func (s *Service) Expenses(ctx context.Context, owner, match string) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := s.ownerExpenses(ctx, owner).Find(&expenses).Error
	if err != nil {
		return nil, s.infrastructure(err, "load", "expenses")
	}

	match = strings.ToLower(strings.TrimSpace(match))
	if match == "" {
		return expenses, nil
	}

	if !strings.Contains(match, "*") {
		match = fmt.Sprintf("*%s*", match)
	}

	filtered := []models.Expense{}
	for _, e := range expenses {
		if glob.Glob(match, strings.ToLower(e.Name)) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

// Dashboard returns all data of owner together with the totals.
func (s *Service) Dashboard(ctx context.Context, owner string) (models.Dashboard, error) {
	budgets, err := s.Budgets(ctx, owner)
	if err != nil {
		return models.Dashboard{}, err
	}

	incomes, err := s.Incomes(ctx, owner)
	if err != nil {
		return models.Dashboard{}, err
	}

	expenses, err := s.Expenses(ctx, owner, "")
	if err != nil {
		return models.Dashboard{}, err
	}

	return models.Dashboard{
		Totals:   totals(budgets, incomes),
		Budgets:  budgets,
		Incomes:  incomes,
		Expenses: expenses,
	}, nil
}

// totals sums up budgets and incomes.
//
// The savings rate is the share of the income that has not been spent in
// percent, rounded to one decimal. Without income, it is 0.
func totals(budgets []models.BudgetSummary, incomes []models.IncomeSummary) models.Totals {
	t := models.Totals{
		TotalBudget: decimal.Zero,
		TotalSpend:  decimal.Zero,
		TotalIncome: decimal.Zero,
		SavingsRate: decimal.Zero,
		BudgetCount: len(budgets),
	}

	for _, b := range budgets {
		if amount, err := validation.ParseAmount(b.Amount); err == nil {
			t.TotalBudget = t.TotalBudget.Add(amount)
		}
		t.TotalSpend = t.TotalSpend.Add(b.TotalSpend)
	}

	for _, i := range incomes {
		t.TotalIncome = t.TotalIncome.Add(i.TotalAmount)
	}

	t.Remaining = t.TotalBudget.Sub(t.TotalSpend)

	if t.TotalIncome.IsPositive() {
		t.SavingsRate = t.TotalIncome.Sub(t.TotalSpend).
			Div(t.TotalIncome).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	return t
}
