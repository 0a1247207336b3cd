package controllers

import (
	"context"
	"net/http"

	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/finova-app/backend/pkg/httputil"
	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/validation"
	"github.com/finova-app/backend/pkg/views"
	"github.com/gin-gonic/gin"
)

// BudgetEditable are the fields of a budget that can be set in requests.
//
// The owner is always the authenticated user.
type BudgetEditable struct {
	Name   string `json:"name" example:"Groceries"`
	Amount string `json:"amount" example:"500"`
	Icon   string `json:"icon" example:"🛒"`
}

type BudgetListResponse struct {
	Data []models.BudgetSummary `json:"data"` // List of budgets, newest first
}

type BudgetResponse struct {
	Data models.BudgetDetail `json:"data"` // Data for the budget
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetList)
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.OPTIONS("/:id/expenses", OptionsBudgetExpenses)
	}

	r.Use(co.Verifier.Middleware())

	// Root group
	{
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudgets)
	}

	// Budget with ID
	{
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
		r.GET("/:id/expenses", co.GetBudgetExpenses)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	int	true	"ID of the budget"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	int	true	"ID of the budget"
// @Router			/v1/budgets/{id}/expenses [options]
func OptionsBudgetExpenses(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create budgets
// @Description	Creates new budgets for the authenticated user
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	CreateResponse
// @Failure		400		{object}	CreateResponse
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		500		{object}	CreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Security		BearerAuth
// @Router			/v1/budgets [post]
func (co Controller) CreateBudgets(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var budgets []BudgetEditable
	if err := httputil.BindData(c, &budgets); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusCreated
	r := CreateResponse{Data: []service.Result[service.ID]{}}

	for _, budget := range budgets {
		result := co.Service.CreateBudget(c.Request.Context(), validation.BudgetCreate{
			Name:      budget.Name,
			Amount:    budget.Amount,
			CreatedBy: email,
			Icon:      budget.Icon,
		})
		status = r.append(result, status)
	}

	c.JSON(status, r)
}

// @Summary		List budgets
// @Description	Returns all budgets of the authenticated user with the totals of their expenses
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	budgets, err := views.Load(c.Request.Context(), co.Views, views.Budgets, email, func(ctx context.Context) ([]models.BudgetSummary, error) {
		return co.Service.Budgets(ctx, email)
	})
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// budgetDetail loads the detail view of the budget in the path.
func (co Controller) budgetDetail(c *gin.Context) (models.BudgetDetail, bool) {
	email, ok := owner(c)
	if !ok {
		return models.BudgetDetail{}, false
	}

	id := httputil.ParamID(c)
	if id <= 0 {
		httperrors.InvalidID(c, "budget")
		return models.BudgetDetail{}, false
	}

	budget, err := views.Load(c.Request.Context(), co.Views, views.BudgetDetail(uint(id)), email, func(ctx context.Context) (models.BudgetDetail, error) {
		return co.Service.Budget(ctx, email, id)
	})
	if err != nil {
		httperrors.Handler(c, err)
		return models.BudgetDetail{}, false
	}

	return budget, true
}

// @Summary		Get budget
// @Description	Returns a budget of the authenticated user with the totals and all of its expenses
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		int	true	"ID of the budget"
// @Security		BearerAuth
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	budget, ok := co.budgetDetail(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// @Summary		List expenses of a budget
// @Description	Returns all expenses of a budget of the authenticated user, newest first
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		int	true	"ID of the budget"
// @Security		BearerAuth
// @Router			/v1/budgets/{id}/expenses [get]
func (co Controller) GetBudgetExpenses(c *gin.Context) {
	budget, ok := co.budgetDetail(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: budget.Expenses})
}

// @Summary		Update budget
// @Description	Updates a budget of the authenticated user. The owner cannot be changed.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	service.Result[service.ID]
// @Failure		400		{object}	service.Result[service.ID]
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		404		{object}	service.Result[service.ID]
// @Failure		500		{object}	service.Result[service.ID]
// @Param			id		path		int						true	"ID of the budget"
// @Param			budget	body		validation.BudgetUpdate	true	"Budget"
// @Security		BearerAuth
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var data validation.BudgetUpdate
	if err := httputil.BindData(c, &data); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	result := co.Service.UpdateBudget(c.Request.Context(), email, httputil.ParamID(c), data)
	c.JSON(status(result, http.StatusOK), result)
}

// @Summary		Delete budget
// @Description	Deletes a budget of the authenticated user together with all of its expenses
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	service.Result[service.ID]
// @Failure		400	{object}	service.Result[service.ID]
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		404	{object}	service.Result[service.ID]
// @Failure		500	{object}	service.Result[service.ID]
// @Param			id	path		int	true	"ID of the budget"
// @Security		BearerAuth
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	result := co.Service.DeleteBudget(c.Request.Context(), email, httputil.ParamID(c))
	c.JSON(status(result, http.StatusOK), result)
}
