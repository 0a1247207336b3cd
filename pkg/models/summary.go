package models

import "github.com/shopspring/decimal"

// BudgetSummary is a budget with the aggregates of its expenses.
//
// TotalSpend and TotalItem are summed up by SummarizeBudget, Remaining and
// OverBudget are calculated from them with WithCalculations.
type BudgetSummary struct {
	Budget
	TotalSpend decimal.Decimal `json:"totalSpend" example:"150"` // Sum of the amounts of all expenses of the budget
	TotalItem  int64           `json:"totalItem" example:"2"`    // Number of expenses of the budget
	Remaining  decimal.Decimal `json:"remaining" example:"350"`  // Amount minus total spend, negative when over budget
	OverBudget bool            `json:"overBudget" example:"false"`
}

// SummarizeBudget sums up the expenses of b exactly.
//
// Amounts that cannot be parsed count as zero, see WithCalculations.
func SummarizeBudget(b Budget, expenses []Expense) BudgetSummary {
	summary := BudgetSummary{
		Budget:     b,
		TotalSpend: decimal.Zero,
		TotalItem:  int64(len(expenses)),
	}

	for _, e := range expenses {
		summary.TotalSpend = summary.TotalSpend.Add(parse(e.Amount))
	}

	return summary.WithCalculations()
}

// WithCalculations computes the values derived from the aggregates.
//
// An amount that cannot be parsed is treated as zero. Amounts are validated
// before they are stored, so this only happens for rows written by other
// clients.
func (b BudgetSummary) WithCalculations() BudgetSummary {
	b.Remaining = parse(b.Amount).Sub(b.TotalSpend)
	b.OverBudget = b.Remaining.IsNegative()

	return b
}

func parse(amount string) decimal.Decimal {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// BudgetDetail is a budget summary together with all of its expenses.
type BudgetDetail struct {
	BudgetSummary
	Expenses []Expense `json:"expenses"`
}

// IncomeSummary is an income with its aggregated amount.
type IncomeSummary struct {
	Income
	TotalAmount decimal.Decimal `json:"totalAmount" example:"5000"`
}

// SummarizeIncome returns the summary of a single income.
func SummarizeIncome(i Income) IncomeSummary {
	return IncomeSummary{Income: i, TotalAmount: parse(i.Amount)}
}

// Totals are the figures shown on top of the dashboard.
type Totals struct {
	TotalBudget decimal.Decimal `json:"totalBudget" example:"1200"` // Sum of all budget amounts
	TotalSpend  decimal.Decimal `json:"totalSpend" example:"830.5"` // Sum of all expenses
	TotalIncome decimal.Decimal `json:"totalIncome" example:"5000"` // Sum of all incomes
	Remaining   decimal.Decimal `json:"remaining" example:"369.5"`  // Total budget minus total spend
	SavingsRate decimal.Decimal `json:"savingsRate" example:"83.4"` // Percentage of income not spent, rounded to one decimal
	BudgetCount int             `json:"budgetCount" example:"4"`
}

// Dashboard is the overview of all data of a user.
type Dashboard struct {
	Totals   Totals          `json:"totals"`
	Budgets  []BudgetSummary `json:"budgets"`
	Incomes  []IncomeSummary `json:"incomes"`
	Expenses []Expense       `json:"expenses"` // All expenses, newest first
}
