package service_test

import (
	"testing"

	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
)

func (suite *TestSuiteStandard) TestCreateIncomeRoundTrip() {
	r := suite.service.CreateIncome(suite.ctx, validation.IncomeCreate{
		Name:      "Salary",
		Amount:    "5000",
		CreatedBy: "a@b.com",
		Icon:      "💰",
	})
	suite.Require().True(r.Success, r.Error)
	suite.Require().NotNil(r.Data)

	var income models.Income
	suite.Require().Nil(suite.db.First(&income, r.Data.ID).Error)

	suite.Assert().Equal("Salary", income.Name)
	suite.Assert().Equal("5000", income.Amount)
	suite.Assert().Equal("a@b.com", income.CreatedBy)
	suite.Assert().Equal("💰", income.Icon)
	suite.Assert().Equal([]string{views.Incomes, views.Dashboard}, suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestCreateIncomeDefaultIcon() {
	id := suite.createTestIncome(validation.IncomeCreate{})

	var income models.Income
	suite.Require().Nil(suite.db.First(&income, id).Error)
	suite.Assert().Equal(models.DefaultIncomeIcon, income.Icon)
}

func (suite *TestSuiteStandard) TestCreateIncomeInvalid() {
	tests := []struct {
		name    string
		payload validation.IncomeCreate
		msg     string
	}{
		{"Non-numeric amount", validation.IncomeCreate{Name: "Salary", Amount: "a lot", CreatedBy: owner}, "amount must be a number greater than 0"},
		{"Zero amount", validation.IncomeCreate{Name: "Salary", Amount: "0", CreatedBy: owner}, "amount must be a number greater than 0"},
		{"Negative amount", validation.IncomeCreate{Name: "Salary", Amount: "-100", CreatedBy: owner}, "amount must be a number greater than 0"},
		{"Bad email", validation.IncomeCreate{Name: "Salary", Amount: "100", CreatedBy: "nobody"}, "createdBy must be a valid email address"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(_ *testing.T) {
			r := suite.service.CreateIncome(suite.ctx, tt.payload)
			assertFailure(suite, r, service.ErrValidation, tt.msg)
		})
	}

	suite.Assert().Equal(int64(0), suite.count(&models.Income{}), "no income must have been inserted")
	suite.Assert().Empty(suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestUpdateIncome() {
	id := suite.createTestIncome(validation.IncomeCreate{})
	suite.invalidated.reset()

	r := suite.service.UpdateIncome(suite.ctx, owner, int64(id), validation.IncomeUpdate{Name: "Bonus", Amount: "750.50", Icon: "🎁"})
	suite.Require().True(r.Success, r.Error)
	suite.Assert().Equal(id, r.Data.ID)

	var income models.Income
	suite.Require().Nil(suite.db.First(&income, id).Error)
	suite.Assert().Equal("Bonus", income.Name)
	suite.Assert().Equal("750.50", income.Amount)
	suite.Assert().Equal("🎁", income.Icon)
	suite.Assert().Equal(owner, income.CreatedBy, "owner must not change")
	suite.Assert().Equal([]string{views.Incomes, views.Dashboard}, suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestUpdateIncomeFailures() {
	id := suite.createTestIncome(validation.IncomeCreate{})
	valid := validation.IncomeUpdate{Name: "Bonus", Amount: "10"}

	assertFailure(suite, suite.service.UpdateIncome(suite.ctx, owner, 0, valid), service.ErrValidation, "Invalid income ID")
	assertFailure(suite, suite.service.UpdateIncome(suite.ctx, owner, int64(id), validation.IncomeUpdate{Name: "Bonus", Amount: "zero"}), service.ErrValidation, "amount must be a number greater than 0")
	assertFailure(suite, suite.service.UpdateIncome(suite.ctx, owner, 4711, valid), service.ErrNotFound, "Income not found")
	assertFailure(suite, suite.service.UpdateIncome(suite.ctx, other, int64(id), valid), service.ErrNotFound, "Income not found")

	var income models.Income
	suite.Require().Nil(suite.db.First(&income, id).Error)
	suite.Assert().Equal("Salary", income.Name)
}

func (suite *TestSuiteStandard) TestDeleteIncome() {
	id := suite.createTestIncome(validation.IncomeCreate{})
	suite.invalidated.reset()

	r := suite.service.DeleteIncome(suite.ctx, owner, int64(id))
	suite.Require().True(r.Success, r.Error)
	suite.Assert().Equal(id, r.Data.ID)
	suite.Assert().Equal(int64(0), suite.count(&models.Income{}))
	suite.Assert().Equal([]string{views.Incomes, views.Dashboard}, suite.invalidated.reset())
}

func (suite *TestSuiteStandard) TestDeleteIncomeFailures() {
	id := suite.createTestIncome(validation.IncomeCreate{})

	assertFailure(suite, suite.service.DeleteIncome(suite.ctx, owner, -1), service.ErrValidation, "Invalid income ID")
	assertFailure(suite, suite.service.DeleteIncome(suite.ctx, owner, 4711), service.ErrNotFound, "Income not found")
	assertFailure(suite, suite.service.DeleteIncome(suite.ctx, other, int64(id)), service.ErrNotFound, "Income not found")

	suite.Assert().Equal(int64(1), suite.count(&models.Income{}))
}

func (suite *TestSuiteStandard) TestIncomeDatabaseError() {
	suite.CloseDB()

	assertFailure(suite, suite.service.CreateIncome(suite.ctx, validation.IncomeCreate{Name: "Salary", Amount: "1", CreatedBy: owner}), service.ErrInfrastructure, "Failed to create income. Please try again.")
	assertFailure(suite, suite.service.UpdateIncome(suite.ctx, owner, 1, validation.IncomeUpdate{Name: "Salary", Amount: "1"}), service.ErrInfrastructure, "Failed to update income. Please try again.")
	assertFailure(suite, suite.service.DeleteIncome(suite.ctx, owner, 1), service.ErrInfrastructure, "Failed to delete income. Please try again.")
}
