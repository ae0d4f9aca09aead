package response

import (
	"errors"
	"net/http"

	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Error  string      `json:"error"`
	Errors interface{} `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteSuccessResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

func WriteMessageResponse(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// WriteErrorResponse maps err onto its status. Errors outside the errs
// taxonomy are logged and replaced by a generic message.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{Error: err.Error(), Errors: errors}

	if !errs.IsKnown(err) {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "WriteErrorResponse").Msg("")
		resp.Error = errs.ErrInternalServer.Error()
	}

	return c.JSON(statusCode, resp)
}

// WriteValidationResponse turns validator field errors into a 400 body.
func WriteValidationResponse(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return WriteErrorResponse(c, err, nil)
	}

	fields := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, ValidationError{Field: fe.Field(), Tag: fe.Tag()})
	}

	return WriteErrorResponse(c, errs.ErrValidation, fields)
}

// HTTPErrorHandler renders errors that escape handlers, echo's own included,
// as {error}. Oversized bodies are reported as a client error.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		WriteErrorResponse(c, err, nil)
		return
	}

	switch he.Code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		WriteErrorResponse(c, errs.ErrRouteNotFound, nil)
	case http.StatusRequestEntityTooLarge:
		WriteErrorResponse(c, errs.ErrFileTooLarge, nil)
	case http.StatusUnauthorized:
		WriteErrorResponse(c, errs.ErrInvalidToken, nil)
	case http.StatusInternalServerError:
		WriteErrorResponse(c, he, nil)
	default:
		c.JSON(he.Code, ErrorResponse{Error: http.StatusText(he.Code)})
	}
}
