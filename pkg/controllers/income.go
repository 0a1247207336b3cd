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

// IncomeEditable are the fields of an income that can be set in requests.
//
// The owner is always the authenticated user.
type IncomeEditable struct {
	Name   string `json:"name" example:"Salary"`
	Amount string `json:"amount" example:"5000"`
	Icon   string `json:"icon" example:"💰"`
}

type IncomeListResponse struct {
	Data []models.IncomeSummary `json:"data"` // List of incomes, newest first
}

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsIncomeList)
		r.OPTIONS("/:id", OptionsIncomeDetail)
	}

	r.Use(co.Verifier.Middleware())

	// Root group
	{
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncomes)
	}

	// Income with ID
	{
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Param			id	path	int	true	"ID of the income"
// @Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// @Summary		Create incomes
// @Description	Creates new incomes for the authenticated user
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		201		{object}	CreateResponse
// @Failure		400		{object}	CreateResponse
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		500		{object}	CreateResponse
// @Param			incomes	body		[]IncomeEditable	true	"Incomes"
// @Security		BearerAuth
// @Router			/v1/incomes [post]
func (co Controller) CreateIncomes(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var incomes []IncomeEditable
	if err := httputil.BindData(c, &incomes); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusCreated
	r := CreateResponse{Data: []service.Result[service.ID]{}}

	for _, income := range incomes {
		result := co.Service.CreateIncome(c.Request.Context(), validation.IncomeCreate{
			Name:      income.Name,
			Amount:    income.Amount,
			CreatedBy: email,
			Icon:      income.Icon,
		})
		status = r.append(result, status)
	}

	c.JSON(status, r)
}

// @Summary		List incomes
// @Description	Returns all incomes of the authenticated user
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/incomes [get]
func (co Controller) GetIncomes(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	incomes, err := views.Load(c.Request.Context(), co.Views, views.Incomes, email, func(ctx context.Context) ([]models.IncomeSummary, error) {
		return co.Service.Incomes(ctx, email)
	})
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeListResponse{Data: incomes})
}

// @Summary		Update income
// @Description	Updates an income of the authenticated user. The owner cannot be changed.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	service.Result[service.ID]
// @Failure		400		{object}	service.Result[service.ID]
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		404		{object}	service.Result[service.ID]
// @Failure		500		{object}	service.Result[service.ID]
// @Param			id		path		int						true	"ID of the income"
// @Param			income	body		validation.IncomeUpdate	true	"Income"
// @Security		BearerAuth
// @Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	var data validation.IncomeUpdate
	if err := httputil.BindData(c, &data); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	result := co.Service.UpdateIncome(c.Request.Context(), email, httputil.ParamID(c), data)
	c.JSON(status(result, http.StatusOK), result)
}

// @Summary		Delete income
// @Description	Deletes an income of the authenticated user
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	service.Result[service.ID]
// @Failure		400	{object}	service.Result[service.ID]
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		404	{object}	service.Result[service.ID]
// @Failure		500	{object}	service.Result[service.ID]
// @Param			id	path		int	true	"ID of the income"
// @Security		BearerAuth
// @Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	result := co.Service.DeleteIncome(c.Request.Context(), email, httputil.ParamID(c))
	c.JSON(status(result, http.StatusOK), result)
}
