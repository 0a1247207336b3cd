package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/finova-app/backend/pkg/httputil"
	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
	"github.com/gin-gonic/gin"
)

// ExpenseEditable are the fields of an expense that can be set when creating it.
type ExpenseEditable struct {
	Name     string `json:"name" example:"Weekly shopping"`
	Amount   string `json:"amount" example:"42.50"`
	BudgetID int64  `json:"budgetId" example:"3"` // The budget must belong to the authenticated user
}

type ExpenseListResponse struct {
	Data []models.Expense `json:"data"` // List of expenses, newest first
}

type ExpenseQueryFilter struct {
	Match string `form:"match"` // Case insensitive glob pattern for the name
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenseList)
		r.OPTIONS("/:id", OptionsExpenseDetail)
	}

	r.Use(co.Verifier.Middleware())

	// Root group
	{
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpenses)
	}

	// Expense with ID
	{
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Param			id	path	int	true	"ID of the expense"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Create expenses
// @Description	Creates new expenses on budgets of the authenticated user. The date is set to the current day.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201			{object}	CreateResponse
// @Failure		400			{object}	CreateResponse
// @Failure		401			{object}	httperrors.HTTPError
// @Failure		404			{object}	CreateResponse
// @Failure		500			{object}	CreateResponse
// @Param			expenses	body		[]ExpenseEditable	true	"Expenses"
// @Security		BearerAuth
// @Router			/v1/expenses [post]
func (co Controller) CreateExpenses(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var expenses []ExpenseEditable
	if err := httputil.BindData(c, &expenses); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusCreated
	r := CreateResponse{Data: []service.Result[service.ID]{}}

	for _, expense := range expenses {
		result := co.Service.CreateExpense(c.Request.Context(), email, validation.ExpenseCreate{
			Name:     expense.Name,
			Amount:   expense.Amount,
			BudgetID: expense.BudgetID,
		})
		status = r.append(result, status)
	}

	c.JSON(status, r)
}

// @Summary		List expenses
// @Description	Returns all expenses on budgets of the authenticated user, newest first
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseListResponse
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			match	query		string	false	"Filter by name. Case insensitive, * matches any text. Without *, names containing the text match."
// @Security		BearerAuth
// @Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var filter ExpenseQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.ShouldBindQuery(&filter)

	ctx := c.Request.Context()

	var expenses []models.Expense
	var err error

	// Only the unfiltered list is a view that is invalidated
	if strings.TrimSpace(filter.Match) == "" {
		expenses, err = views.Load(ctx, co.Views, views.Expenses, email, func(ctx context.Context) ([]models.Expense, error) {
			return co.Service.Expenses(ctx, email, "")
		})
	} else {
		expenses, err = co.Service.Expenses(ctx, email, filter.Match)
	}

	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}

// @Summary		Update expense
// @Description	Updates name and amount of an expense on a budget of the authenticated user
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	service.Result[service.ID]
// @Failure		400		{object}	service.Result[service.ID]
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		404		{object}	service.Result[service.ID]
// @Failure		500		{object}	service.Result[service.ID]
// @Param			id		path		int							true	"ID of the expense"
// @Param			expense	body		validation.ExpenseUpdate	true	"Expense"
// @Security		BearerAuth
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var data validation.ExpenseUpdate
	if err := httputil.BindData(c, &data); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	result := co.Service.UpdateExpense(c.Request.Context(), email, httputil.ParamID(c), data)
	c.JSON(status(result, http.StatusOK), result)
}

// @Summary		Delete expense
// @Description	Deletes an expense on a budget of the authenticated user
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	service.Result[service.ID]
// @Failure		400	{object}	service.Result[service.ID]
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		404	{object}	service.Result[service.ID]
// @Failure		500	{object}	service.Result[service.ID]
// @Param			id	path		int	true	"ID of the expense"
// @Security		BearerAuth
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	result := co.Service.DeleteExpense(c.Request.Context(), email, httputil.ParamID(c))
	c.JSON(status(result, http.StatusOK), result)
}
