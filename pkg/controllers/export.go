package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/finova-app/backend/pkg/export"
	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/finova-app/backend/pkg/httputil"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

var exportFormats = []string{export.FormatJSON, export.FormatXLSX}

func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsExport)
	r.GET("", co.Verifier.Middleware(), co.GetExport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export data
// @Description	Exports all incomes, budgets and expenses of the authenticated user as a file
// @Tags			Export
// @Produce		json
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200		{object}	export.Data
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		401		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			format	query		string	false	"Format of the file, json (default) or xlsx"
// @Security		BearerAuth
// @Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	email, ok := owner(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", export.FormatJSON)
	if !slices.Contains(exportFormats, format) {
		httperrors.New(c, http.StatusBadRequest, "The format must be one of json, xlsx")
		return
	}

	data, err := export.Collect(c.Request.Context(), co.Service.DB(), email)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}
	data.Version = co.Version

	var buf bytes.Buffer
	contentType := "application/json; charset=utf-8"

	if format == export.FormatXLSX {
		contentType = export.ContentTypeXLSX
		err = export.WriteXLSX(&buf, data)
	} else {
		err = export.WriteJSON(&buf, data)
	}

	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(data, format)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
