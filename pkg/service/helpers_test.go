package service_test

import (
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/validation"
)

func (suite *TestSuiteStandard) createTestIncome(in validation.IncomeCreate) uint {
	if in.Name == "" {
		in.Name = "Salary"
	}
	if in.Amount == "" {
		in.Amount = "5000"
	}
	if in.CreatedBy == "" {
		in.CreatedBy = owner
	}

	r := suite.service.CreateIncome(suite.ctx, in)
	suite.Require().True(r.Success, r.Error)
	return r.Data.ID
}

func (suite *TestSuiteStandard) createTestBudget(in validation.BudgetCreate) uint {
	if in.Name == "" {
		in.Name = "Groceries"
	}
	if in.Amount == "" {
		in.Amount = "500"
	}
	if in.CreatedBy == "" {
		in.CreatedBy = owner
	}

	r := suite.service.CreateBudget(suite.ctx, in)
	suite.Require().True(r.Success, r.Error)
	return r.Data.ID
}

func (suite *TestSuiteStandard) createTestExpense(budgetID uint, name, amount string) uint {
	r := suite.service.CreateExpense(suite.ctx, owner, validation.ExpenseCreate{
		Name:     name,
		Amount:   amount,
		BudgetID: int64(budgetID),
	})
	suite.Require().True(r.Success, r.Error)
	return r.Data.ID
}

// assertFailure verifies that a result failed with the given kind and message.
func assertFailure[T any](suite *TestSuiteStandard, r service.Result[T], kind error, message string) {
	suite.Assert().False(r.Success)
	suite.Assert().Nil(r.Data)
	suite.Assert().Equal(message, r.Error)
	suite.Assert().ErrorIs(r.Err, kind)
}
