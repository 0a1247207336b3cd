package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/finova-app/backend/pkg/service"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Error string `json:"error" example:"Budget not found"`
}

// New writes an HTTPError with the formatted message.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	// Format msgAndArgs in a final string.
	// This is taken almost exactly from https://github.com/stretchr/testify/blob/181cea6eab8b2de7071383eca4be32a424db38dd/assert/assertions.go#L181
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

func InvalidID(c *gin.Context, entity string) {
	New(c, http.StatusBadRequest, "Invalid %s ID", entity)
}

// Status returns the HTTP status code for an error returned by the service.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrDependency):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Handler writes the error response for an error returned by the service.
//
// Only messages of *service.Error are shown to users. Everything else
// is logged and replaced with a generic message.
func Handler(c *gin.Context, err error) {
	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		New(c, Status(err), serviceErr.Message)
		return
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	New(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c)))
}
