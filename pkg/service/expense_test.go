package service_test

import (
	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
)

func (suite *TestSuiteStandard) TestCreateExpense() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{})
	suite.invalidated.reset()

	r := suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{Name: "Bread", Amount: "3.20", BudgetID: int64(budgetID)})
	suite.Require().True(r.Success, r.Error)

	var expense models.Expense
	suite.Require().Nil(suite.db.First(&expense, r.Data.ID).Error)
	suite.Assert().Equal("Bread", expense.Name)
	suite.Assert().Equal("3.20", expense.Amount)
	suite.Assert().Equal(budgetID, expense.BudgetID)
	suite.Assert().Equal("2024-05-17", expense.CreatedAt)

	suite.Assert().Equal([]string{views.Expenses, views.BudgetDetail(budgetID), views.Budgets, views.Dashboard}, suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestCreateExpenseMissingBudget() {
	r := suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{Name: "Bread", Amount: "3.20", BudgetID: 4711})

	assertFailure(suite, r, service.ErrDependency, "Budget not found")
	suite.Assert().Equal(int64(0), suite.count(&models.Expense{}))
	suite.Assert().Empty(suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestCreateExpenseOnForeignBudget() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{CreatedBy: other})

	r := suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{Name: "Bread", Amount: "3.20", BudgetID: int64(budgetID)})
	assertFailure(suite, r, service.ErrDependency, "Budget not found")
	suite.Assert().Equal(int64(0), suite.count(&models.Expense{}))
}

func (suite *TestSuiteStandard) TestCreateExpenseInvalid() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{})

	r := suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{Name: "Bread", Amount: "-3", BudgetID: int64(budgetID)})
	assertFailure(suite, r, service.ErrValidation, "amount must be a number greater than 0")

	r = suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{Name: "Bread", Amount: "3"})
	assertFailure(suite, r, service.ErrValidation, "budgetId must be a positive number")

	suite.Assert().Equal(int64(0), suite.count(&models.Expense{}))
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{})
	id := suite.createTestExpense(budgetID, "Bread", "3.20")
	suite.invalidated.reset()

	r := suite.service.UpdateExpense(suite.ctx, owner, int64(id), validation.ExpenseUpdate{Name: "Cake", Amount: "12"})
	suite.Require().True(r.Success, r.Error)

	var expense models.Expense
	suite.Require().Nil(suite.db.First(&expense, id).Error)
	suite.Assert().Equal("Cake", expense.Name)
	suite.Assert().Equal("12", expense.Amount)
	suite.Assert().Equal(budgetID, expense.BudgetID)
	suite.Assert().Equal([]string{views.Expenses, views.BudgetDetail(budgetID), views.Budgets, views.Dashboard}, suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestUpdateExpenseFailures() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{})
	id := suite.createTestExpense(budgetID, "Bread", "3.20")
	valid := validation.ExpenseUpdate{Name: "Cake", Amount: "12"}

	assertFailure(suite, suite.service.UpdateExpense(suite.ctx, owner, 0, valid), service.ErrValidation, "Invalid expense ID")
	assertFailure(suite, suite.service.UpdateExpense(suite.ctx, owner, int64(id), validation.ExpenseUpdate{Name: "Cake"}), service.ErrValidation, "amount must be a number greater than 0")
	assertFailure(suite, suite.service.UpdateExpense(suite.ctx, owner, 4711, valid), service.ErrNotFound, "Expense not found")
	assertFailure(suite, suite.service.UpdateExpense(suite.ctx, other, int64(id), valid), service.ErrNotFound, "Expense not found")
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{})
	id := suite.createTestExpense(budgetID, "Bread", "3.20")
	suite.invalidated.reset()

	r := suite.service.DeleteExpense(suite.ctx, owner, int64(id))
	suite.Require().True(r.Success, r.Error)
	suite.Assert().Equal(id, r.Data.ID)

	suite.Assert().Equal(int64(0), suite.count(&models.Expense{}))
	suite.Assert().Equal(int64(1), suite.count(&models.Budget{}), "the budget must not be affected")
	suite.Assert().Equal([]string{views.Expenses, views.BudgetDetail(budgetID), views.Budgets, views.Dashboard}, suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestDeleteExpenseFailures() {
	budgetID := suite.createTestBudget(validation.BudgetCreate{})
	id := suite.createTestExpense(budgetID, "Bread", "3.20")

	assertFailure(suite, suite.service.DeleteExpense(suite.ctx, owner, 0), service.ErrValidation, "Invalid expense ID")
	assertFailure(suite, suite.service.DeleteExpense(suite.ctx, owner, 4711), service.ErrNotFound, "Expense not found")
	assertFailure(suite, suite.service.DeleteExpense(suite.ctx, other, int64(id)), service.ErrNotFound, "Expense not found")

	suite.Assert().Equal(int64(1), suite.count(&models.Expense{}))
}

func (suite *TestSuiteStandard) TestExpenseDatabaseError() {
	suite.CloseDB()

	assertFailure(suite, suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{Name: "Bread", Amount: "1", BudgetID: 1}), service.ErrInfrastructure, "Failed to create expense. Please try again.")
	assertFailure(suite, suite.service.UpdateExpense(suite.ctx, owner, 1, validation.ExpenseUpdate{Name: "Bread", Amount: "1"}), service.ErrInfrastructure, "Failed to update expense. Please try again.")
	assertFailure(suite, suite.service.DeleteExpense(suite.ctx, owner, 1), service.ErrInfrastructure, "Failed to delete expense. Please try again.")
}
