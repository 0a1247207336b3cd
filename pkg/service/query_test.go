package service_test

import (
	"fmt"

	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetAggregates() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "500"})
	suite.createTestExpense(id, "Bread", "100")
	suite.createTestExpense(id, "Cheese", "50")

	budgets, err := suite.service.Budgets(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)

	suite.Assert().True(decimal.NewFromInt(150).Equal(budgets[0].TotalSpend), "total spend is %s", budgets[0].TotalSpend)
	suite.Assert().Equal(int64(2), budgets[0].TotalItem)
	suite.Assert().True(decimal.NewFromInt(350).Equal(budgets[0].Remaining), "remaining is %s", budgets[0].Remaining)
	suite.Assert().False(budgets[0].OverBudget)
}

func (suite *TestSuiteStandard) TestBudgetOverBudget() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "200"})
	suite.createTestExpense(id, "TV", "250")

	budgets, err := suite.service.Budgets(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)

	suite.Assert().True(decimal.NewFromInt(-50).Equal(budgets[0].Remaining), "remaining is %s", budgets[0].Remaining)
	suite.Assert().True(budgets[0].OverBudget)
}

func (suite *TestSuiteStandard) TestBudgetsWithoutExpenses() {
	suite.createTestBudget(validation.BudgetCreate{Amount: "500"})

	budgets, err := suite.service.Budgets(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().True(budgets[0].TotalSpend.IsZero())
	suite.Assert().Equal(int64(0), budgets[0].TotalItem)
}

func (suite *TestSuiteStandard) TestBudgetsAreScopedByOwner() {
	mine := suite.createTestBudget(validation.BudgetCreate{Name: "Groceries"})
	theirs := suite.createTestBudget(validation.BudgetCreate{Name: "Groceries", CreatedBy: other})

	budgets, err := suite.service.Budgets(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal(mine, budgets[0].ID)

	budgets, err = suite.service.Budgets(suite.ctx, other)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal(theirs, budgets[0].ID)
}

func (suite *TestSuiteStandard) TestBudgetsNewestFirst() {
	first := suite.createTestBudget(validation.BudgetCreate{Name: "First"})
	second := suite.createTestBudget(validation.BudgetCreate{Name: "Second"})

	budgets, err := suite.service.Budgets(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 2)
	suite.Assert().Equal(second, budgets[0].ID)
	suite.Assert().Equal(first, budgets[1].ID)
}

func (suite *TestSuiteStandard) TestBudgetDetail() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "500"})
	first := suite.createTestExpense(id, "Bread", "100")
	second := suite.createTestExpense(id, "Cheese", "50")

	detail, err := suite.service.Budget(suite.ctx, owner, int64(id))
	suite.Require().Nil(err)
	suite.Assert().Equal(id, detail.ID)
	suite.Assert().Equal(int64(2), detail.TotalItem)
	suite.Require().Len(detail.Expenses, 2)
	suite.Assert().Equal(second, detail.Expenses[0].ID)
	suite.Assert().Equal(first, detail.Expenses[1].ID)
}

func (suite *TestSuiteStandard) TestBudgetDetailFailures() {
	id := suite.createTestBudget(validation.BudgetCreate{})

	_, err := suite.service.Budget(suite.ctx, owner, 0)
	suite.Assert().ErrorIs(err, service.ErrValidation)

	_, err = suite.service.Budget(suite.ctx, owner, 4711)
	suite.Assert().ErrorIs(err, service.ErrNotFound)
	suite.Assert().Equal("Budget not found", err.Error())

	_, err = suite.service.Budget(suite.ctx, other, int64(id))
	suite.Assert().ErrorIs(err, service.ErrNotFound)
}

func (suite *TestSuiteStandard) TestIncomes() {
	suite.createTestIncome(validation.IncomeCreate{Name: "Salary", Amount: "5000"})
	suite.createTestIncome(validation.IncomeCreate{Name: "Rent", Amount: "700"})
	suite.createTestIncome(validation.IncomeCreate{Name: "Salary", Amount: "9000", CreatedBy: other})

	incomes, err := suite.service.Incomes(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(incomes, 2)
	suite.Assert().Equal("Rent", incomes[0].Name)
	suite.Assert().True(decimal.NewFromInt(700).Equal(incomes[0].TotalAmount))
	suite.Assert().Equal("Salary", incomes[1].Name)
}

func (suite *TestSuiteStandard) TestExpenses() {
	mine := suite.createTestBudget(validation.BudgetCreate{})
	theirs := suite.createTestBudget(validation.BudgetCreate{CreatedBy: other})

	suite.createTestExpense(mine, "Coffee beans", "12")
	suite.createTestExpense(mine, "Bread", "3")
	r := suite.service.CreateExpense(suite.ctx, other, validation.ExpenseCreate{Name: "Coffee", Amount: "4", BudgetID: int64(theirs)})
	suite.Require().True(r.Success, r.Error)

	expenses, err := suite.service.Expenses(suite.ctx, owner, "")
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 2)
	suite.Assert().Equal("Bread", expenses[0].Name)
	suite.Assert().Equal("Coffee beans", expenses[1].Name)
}

func (suite *TestSuiteStandard) TestExpensesMatch() {
	id := suite.createTestBudget(validation.BudgetCreate{})
	suite.createTestExpense(id, "Coffee beans", "12")
	suite.createTestExpense(id, "Iced coffee", "4")
	suite.createTestExpense(id, "Bread", "3")

	tests := []struct {
		match string
		names []string
	}{
		{"coffee", []string{"Iced coffee", "Coffee beans"}},
		{"Coffee*", []string{"Coffee beans"}},
		{"*bread", []string{"Bread"}},
		{"tea", []string{}},
	}

	for _, tt := range tests {
		expenses, err := suite.service.Expenses(suite.ctx, owner, tt.match)
		suite.Require().Nil(err)

		names := []string{}
		for _, e := range expenses {
			names = append(names, e.Name)
		}
		suite.Assert().Equal(tt.names, names, "match %q", tt.match)
	}
}

func (suite *TestSuiteStandard) TestDashboard() {
	groceries := suite.createTestBudget(validation.BudgetCreate{Name: "Groceries", Amount: "500"})
	rent := suite.createTestBudget(validation.BudgetCreate{Name: "Rent", Amount: "1000"})
	suite.createTestExpense(groceries, "Bread", "100")
	suite.createTestExpense(rent, "Rent May", "1000")
	suite.createTestIncome(validation.IncomeCreate{Amount: "4000"})

	// Data of other users must not show up
	suite.createTestIncome(validation.IncomeCreate{Amount: "100000", CreatedBy: other})
	suite.createTestBudget(validation.BudgetCreate{Amount: "100000", CreatedBy: other})

	dashboard, err := suite.service.Dashboard(suite.ctx, owner)
	suite.Require().Nil(err)

	suite.Assert().Len(dashboard.Budgets, 2)
	suite.Assert().Len(dashboard.Incomes, 1)
	suite.Assert().Len(dashboard.Expenses, 2)

	totals := dashboard.Totals
	suite.Assert().Equal(2, totals.BudgetCount)
	suite.Assert().True(decimal.NewFromInt(1500).Equal(totals.TotalBudget), "total budget is %s", totals.TotalBudget)
	suite.Assert().True(decimal.NewFromInt(1100).Equal(totals.TotalSpend), "total spend is %s", totals.TotalSpend)
	suite.Assert().True(decimal.NewFromInt(4000).Equal(totals.TotalIncome), "total income is %s", totals.TotalIncome)
	suite.Assert().True(decimal.NewFromInt(400).Equal(totals.Remaining), "remaining is %s", totals.Remaining)
	suite.Assert().Equal("72.5", totals.SavingsRate.String())
}

func (suite *TestSuiteStandard) TestDashboardWithoutIncome() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "100"})
	suite.createTestExpense(id, "Bread", "30")

	dashboard, err := suite.service.Dashboard(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Assert().True(dashboard.Totals.SavingsRate.IsZero())
	suite.Assert().Empty(dashboard.Incomes)
}

func (suite *TestSuiteStandard) TestQueryDatabaseError() {
	suite.CloseDB()

	_, err := suite.service.Budgets(suite.ctx, owner)
	suite.Assert().ErrorIs(err, service.ErrInfrastructure)
	suite.Assert().Equal("Failed to load budgets. Please try again.", err.Error())

	_, err = suite.service.Dashboard(suite.ctx, owner)
	suite.Assert().ErrorIs(err, service.ErrInfrastructure)
}

func (suite *TestSuiteStandard) TestBudgetAggregatesAreExact() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "0.3"})
	suite.createTestExpense(id, "Gum", "0.1")
	suite.createTestExpense(id, "Mints", "0.2")

	budgets, err := suite.service.Budgets(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)

	suite.Assert().True(decimal.RequireFromString("0.3").Equal(budgets[0].TotalSpend), "total spend is %s", budgets[0].TotalSpend)
	suite.Assert().True(budgets[0].Remaining.IsZero(), "remaining is %s", budgets[0].Remaining)
	suite.Assert().False(budgets[0].OverBudget)

	detail, err := suite.service.Budget(suite.ctx, owner, int64(id))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.RequireFromString("0.3").Equal(detail.TotalSpend), "total spend is %s", detail.TotalSpend)
	suite.Assert().True(detail.Remaining.IsZero(), "remaining is %s", detail.Remaining)
	suite.Assert().False(detail.OverBudget)
}

func (suite *TestSuiteStandard) TestBudgetDetailFractionalAmounts() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "100"})
	suite.createTestExpense(id, "Market", "42.50")
	suite.createTestExpense(id, "Bakery", "7.35")
	suite.createTestExpense(id, "Kiosk", "0.15")

	detail, err := suite.service.Budget(suite.ctx, owner, int64(id))
	suite.Require().Nil(err)
	suite.Assert().Equal("50", detail.TotalSpend.String())
	suite.Assert().Equal("50", detail.Remaining.String())
	suite.Assert().Equal(int64(3), detail.TotalItem)
}

func (suite *TestSuiteStandard) TestIncomesFractionalAmounts() {
	suite.createTestIncome(validation.IncomeCreate{Amount: "1234.56"})

	incomes, err := suite.service.Incomes(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(incomes, 1)
	suite.Assert().Equal("1234.56", incomes[0].TotalAmount.String())
}

func (suite *TestSuiteStandard) TestDashboardFractionalAmounts() {
	snacks := suite.createTestBudget(validation.BudgetCreate{Name: "Snacks", Amount: "0.3"})
	groceries := suite.createTestBudget(validation.BudgetCreate{Name: "Groceries", Amount: "42.50"})
	suite.createTestExpense(snacks, "Gum", "0.1")
	suite.createTestExpense(snacks, "Mints", "0.2")
	suite.createTestExpense(groceries, "Market", "42.50")
	suite.createTestIncome(validation.IncomeCreate{Amount: "100.10"})

	dashboard, err := suite.service.Dashboard(suite.ctx, owner)
	suite.Require().Nil(err)

	totals := dashboard.Totals
	suite.Assert().Equal("42.8", totals.TotalBudget.String())
	suite.Assert().Equal("42.8", totals.TotalSpend.String())
	suite.Assert().Equal("100.1", totals.TotalIncome.String())
	suite.Assert().True(totals.Remaining.IsZero(), "remaining is %s", totals.Remaining)
	suite.Assert().Equal("57.2", totals.SavingsRate.String())

	for _, b := range dashboard.Budgets {
		suite.Assert().False(b.OverBudget, "budget %s is over budget", b.Name)
	}
}

func (suite *TestSuiteStandard) TestDashboardListsAllExpenses() {
	id := suite.createTestBudget(validation.BudgetCreate{Amount: "1000"})

	var ids []uint
	for i := range 12 {
		ids = append(ids, suite.createTestExpense(id, fmt.Sprintf("Expense %d", i), "1"))
	}

	dashboard, err := suite.service.Dashboard(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Require().Len(dashboard.Expenses, 12)
	suite.Assert().Equal(ids[11], dashboard.Expenses[0].ID)
	suite.Assert().Equal(ids[0], dashboard.Expenses[11].ID)
}
