package controllers

import (
	"net/http"

	"github.com/finova-app/backend/pkg/httputil"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard"` // URL of the dashboard
	Incomes   string `json:"incomes" example:"https://example.com/api/v1/incomes"`     // URL of Income collection endpoint
	Budgets   string `json:"budgets" example:"https://example.com/api/v1/budgets"`     // URL of Budget collection endpoint
	Expenses  string `json:"expenses" example:"https://example.com/api/v1/expenses"`   // URL of Expense collection endpoint
	Advice    string `json:"advice" example:"https://example.com/api/v1/advice"`       // URL of the financial assistant
	Export    string `json:"export" example:"https://example.com/api/v1/export"`       // URL of the data export
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Failure		401	{object}	httperrors.HTTPError
//	@Security		BearerAuth
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := httputil.URL(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Dashboard: url + "/v1/dashboard",
			Incomes:   url + "/v1/incomes",
			Budgets:   url + "/v1/budgets",
			Expenses:  url + "/v1/expenses",
			Advice:    url + "/v1/advice",
			Export:    url + "/v1/export",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
