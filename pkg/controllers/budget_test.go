package controllers_test

import (
	"fmt"
	"net/http"

	"github.com/finova-app/backend/pkg/controllers"
	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	recorder := suite.request(http.MethodPost, "http://example.com/v1/budgets", []controllers.BudgetEditable{
		{Name: "Groceries", Amount: "500", Icon: "🛒"},
		{Name: "Rent", Amount: "900"},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response controllers.CreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)

	var rent models.Budget
	suite.Require().Nil(suite.db.First(&rent, response.Data[1].Data.ID).Error)
	suite.Assert().Equal(models.DefaultBudgetIcon, rent.Icon)
	suite.Assert().Equal(owner, rent.CreatedBy)
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	groceries := suite.createTestBudget(owner, controllers.BudgetEditable{Name: "Groceries", Amount: "100"})
	rent := suite.createTestBudget(owner, controllers.BudgetEditable{Name: "Rent", Amount: "900"})
	suite.createTestBudget(other, controllers.BudgetEditable{Name: "Hidden"})

	suite.createTestExpense(owner, groceries, "Market", "60")
	suite.createTestExpense(owner, groceries, "Bakery", "50")

	recorder := suite.request(http.MethodGet, "http://example.com/v1/budgets", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.BudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)

	suite.Assert().Equal(rent, response.Data[0].ID, "budgets must be sorted newest first")
	suite.Assert().True(response.Data[0].TotalSpend.IsZero())
	suite.Assert().Equal(int64(0), response.Data[0].TotalItem)

	g := response.Data[1]
	suite.Assert().Equal(groceries, g.ID)
	suite.Assert().True(decimal.NewFromInt(110).Equal(g.TotalSpend), g.TotalSpend.String())
	suite.Assert().Equal(int64(2), g.TotalItem)
	suite.Assert().True(decimal.NewFromInt(-10).Equal(g.Remaining), g.Remaining.String())
	suite.Assert().True(g.OverBudget)
}

func (suite *TestSuiteStandard) TestBudgetsGet() {
	id := suite.createTestBudget(owner, controllers.BudgetEditable{})
	first := suite.createTestExpense(owner, id, "Market", "42.50")
	second := suite.createTestExpense(owner, id, "Bakery", "7.50")

	recorder := suite.request(http.MethodGet, budgetURL(id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("Groceries", response.Data.Name)
	suite.Assert().True(decimal.NewFromInt(50).Equal(response.Data.TotalSpend), response.Data.TotalSpend.String())
	suite.Assert().True(decimal.NewFromInt(450).Equal(response.Data.Remaining), response.Data.Remaining.String())
	suite.Assert().False(response.Data.OverBudget)
	suite.Require().Len(response.Data.Expenses, 2)
	suite.Assert().Equal(second, response.Data.Expenses[0].ID)
	suite.Assert().Equal(first, response.Data.Expenses[1].ID)

	recorder = suite.request(http.MethodGet, budgetURL(id)+"/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var expenses controllers.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &expenses)
	suite.Assert().Len(expenses.Data, 2)
}

func (suite *TestSuiteStandard) TestBudgetsGetFailures() {
	id := suite.createTestBudget(owner, controllers.BudgetEditable{})

	tests := []struct {
		name    string
		email   string
		url     string
		status  int
		message string
	}{
		{"Invalid ID", owner, "http://example.com/v1/budgets/groceries", http.StatusBadRequest, "Invalid budget ID"},
		{"Zero ID", owner, "http://example.com/v1/budgets/0/expenses", http.StatusBadRequest, "Invalid budget ID"},
		{"Not existing", owner, "http://example.com/v1/budgets/4711", http.StatusNotFound, "Budget not found"},
		{"Other owner", other, budgetURL(id), http.StatusNotFound, "Budget not found"},
		{"Other owner expenses", other, budgetURL(id) + "/expenses", http.StatusNotFound, "Budget not found"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			recorder := suite.requestAs(tt.email, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(suite.T(), &recorder, tt.status)
			suite.Assert().Equal(tt.message, test.DecodeError(suite.T(), recorder.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	id := suite.createTestBudget(owner, controllers.BudgetEditable{})

	// Load the detail view so that it is cached
	recorder := suite.request(http.MethodGet, budgetURL(id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(http.MethodPatch, budgetURL(id), map[string]string{"name": "Food", "amount": "650", "icon": "🥦"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(http.MethodGet, budgetURL(id), "")
	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Food", response.Data.Name)
	suite.Assert().Equal("650", response.Data.Amount)
	suite.Assert().Equal("🥦", response.Data.Icon)
}

func (suite *TestSuiteStandard) TestBudgetsUpdateOtherOwner() {
	id := suite.createTestBudget(owner, controllers.BudgetEditable{})

	recorder := suite.requestAs(other, http.MethodPatch, budgetURL(id), map[string]string{"name": "Mine now", "amount": "1"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var budget models.Budget
	suite.Require().Nil(suite.db.First(&budget, id).Error)
	suite.Assert().Equal("Groceries", budget.Name)
}

func (suite *TestSuiteStandard) TestBudgetsDeleteCascades() {
	id := suite.createTestBudget(owner, controllers.BudgetEditable{})
	keep := suite.createTestBudget(owner, controllers.BudgetEditable{Name: "Rent"})
	suite.createTestExpense(owner, id, "Market", "10")
	suite.createTestExpense(owner, id, "Bakery", "20")
	kept := suite.createTestExpense(owner, keep, "March", "900")

	// Cache the expense list
	recorder := suite.request(http.MethodGet, "http://example.com/v1/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.requestAs(other, http.MethodDelete, budgetURL(id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(http.MethodDelete, budgetURL(id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var result service.Result[service.ID]
	test.DecodeResponse(suite.T(), &recorder, &result)
	suite.Assert().True(result.Success)
	suite.Assert().Equal(id, result.Data.ID)

	recorder = suite.request(http.MethodGet, budgetURL(id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(http.MethodGet, "http://example.com/v1/expenses", "")
	var expenses controllers.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &expenses)
	suite.Require().Len(expenses.Data, 1)
	suite.Assert().Equal(kept, expenses.Data[0].ID)

	recorder = suite.request(http.MethodDelete, budgetURL(id), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
	test.DecodeResponse(suite.T(), &recorder, &result)
	suite.Assert().Equal("Budget not found", result.Error)
}

func (suite *TestSuiteStandard) TestBudgetsDeleteInvalidID() {
	recorder := suite.request(http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", "x"), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var result service.Result[service.ID]
	test.DecodeResponse(suite.T(), &recorder, &result)
	suite.Assert().Equal("Invalid budget ID", result.Error)
}
