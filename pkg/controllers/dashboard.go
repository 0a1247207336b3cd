package controllers

import (
	"context"
	"net/http"

	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/finova-app/backend/pkg/httputil"
	"github.com/finova-app/backend/pkg/models"
	"github.com/finova-app/backend/pkg/views"
	"github.com/gin-gonic/gin"
)

type DashboardResponse struct {
	Data models.Dashboard `json:"data"`
}

func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", co.Verifier.Middleware(), co.GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the totals, budgets, incomes and latest expenses of the authenticated user
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		401	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/dashboard [get]
func (co Controller) GetDashboard(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	dashboard, err := co.dashboard(c.Request.Context(), email)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: dashboard})
}

func (co Controller) dashboard(ctx context.Context, email string) (models.Dashboard, error) {
	return views.Load(ctx, co.Views, views.Dashboard, email, func(ctx context.Context) (models.Dashboard, error) {
		return co.Service.Dashboard(ctx, email)
	})
}
