package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/finova-app/backend/pkg/advice"
	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/finova-app/backend/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// AdviceRequest is the JSON request for advice.
type AdviceRequest struct {
	Query string `json:"query" example:"How can I save more each month?"` // Optional question to the assistant
}

type AdviceResponse struct {
	Data advice.Advice `json:"data"`
}

func (co Controller) RegisterAdviceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAdvice)
	r.POST("", co.Verifier.Middleware(), co.CreateAdvice)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Advice
// @Success		204
// @Router			/v1/advice [options]
func OptionsAdvice(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get financial advice
// @Description	Asks the financial assistant for advice.
// @Description
// @Description	With a multipart request containing a PDF in the field "file", the advice is about the document.
// @Description	Otherwise, the advice is based on the totals of the dashboard and the optional query.
// @Description	A user without any data gets general advice.
// @Description
// @Description	If no advice can be given, "fallback" is true and "advice" explains why.
// @Tags			Advice
// @Accept			json
// @Accept			mpfd
// @Produce		json
// @Success		200		{object}	AdviceResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			request	body		AdviceRequest	false	"Question"
// @Param			file	formData	file			false	"PDF document"
// @Security		BearerAuth
// @Router			/v1/advice [post]
func (co Controller) CreateAdvice(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var query string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err == nil {
			document, err := readDocument(file, co.Advisor.MaxDocumentBytes())
			if err != nil {
				httperrors.Handler(c, err)
				return
			}

			c.JSON(http.StatusOK, AdviceResponse{Data: co.Advisor.Advise(ctx, advice.Input{Document: document})})
			return
		}

		if !errors.Is(err, http.ErrMissingFile) {
			httperrors.New(c, http.StatusBadRequest, httputil.ErrInvalidBody.Error())
			return
		}

		query = c.PostForm("query")
	} else {
		var request AdviceRequest
		if err := httputil.BindData(c, &request); err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
			httperrors.New(c, http.StatusBadRequest, err.Error())
			return
		}
		query = request.Query
	}

	dashboard, err := co.dashboard(ctx, email)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	var input advice.Input

	t := dashboard.Totals
	query = strings.TrimSpace(query)
	if query != "" || !t.TotalBudget.IsZero() || !t.TotalIncome.IsZero() || !t.TotalSpend.IsZero() {
		input.Snapshot = &advice.Snapshot{
			TotalBudget: t.TotalBudget,
			TotalIncome: t.TotalIncome,
			TotalSpend:  t.TotalSpend,
			Query:       query,
		}
	}

	c.JSON(http.StatusOK, AdviceResponse{Data: co.Advisor.Advise(ctx, input)})
}

// readDocument reads an uploaded file. At most one byte more than limit
// is read so that the advisor can reject documents that are too large.
func readDocument(file *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded document: %w", err)
	}
	defer f.Close()

	reader := io.Reader(f)
	if limit > 0 {
		reader = io.LimitReader(f, limit+1)
	}

	document, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded document: %w", err)
	}

	return document, nil
}
