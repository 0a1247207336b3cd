// Package controllers implements the HTTP API of version 1.
//
// All endpoints require an authenticated user. Rows are always read and
// written for the email address of that user.
package controllers

import (
	"net/http"

	"github.com/finova-app/backend/pkg/advice"
	"github.com/finova-app/backend/pkg/auth"
	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/finova-app/backend/pkg/service"
	"github.com/finova-app/backend/pkg/views"
	"github.com/gin-gonic/gin"
)

// Controller holds the collaborators of all handlers.
type Controller struct {
	Service  *service.Service
	Views    *views.Cache // Read views, nothing is cached if nil
	Advisor  *advice.Advisor
	Verifier *auth.Verifier
	Version  string
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
//
// OPTIONS requests are answered without authentication, all other
// requests need a valid token.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsV1)
		r.GET("", co.Verifier.Middleware(), GetV1)
	}

	co.RegisterDashboardRoutes(r.Group("/dashboard"))
	co.RegisterIncomeRoutes(r.Group("/incomes"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterAdviceRoutes(r.Group("/advice"))
	co.RegisterExportRoutes(r.Group("/export"))
}

// owner returns the email address of the authenticated user.
//
// The auth middleware guarantees an identity. If it is missing anyway,
// the request is aborted.
func owner(c *gin.Context) (string, bool) {
	identity, ok := auth.Get(c)
	if !ok || identity.Email == "" {
		httperrors.New(c, http.StatusUnauthorized, auth.MessageUnauthorized)
		c.Abort()
		return "", false
	}

	return identity.Email, true
}

// CreateResponse is the response for all endpoints creating resources.
type CreateResponse struct {
	Data []service.Result[service.ID] `json:"data"` // One result per resource in the request, in the same order
}

// append adds a result and returns the status of the whole response.
//
// The final status code is the highest HTTP status code number of
// all results.
func (r *CreateResponse) append(result service.Result[service.ID], currentStatus int) int {
	r.Data = append(r.Data, result)

	newStatus := status(result, http.StatusCreated)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

// status returns the HTTP status for result.
func status[T any](result service.Result[T], success int) int {
	if result.Success {
		return success
	}

	return httperrors.Status(result.Err)
}
