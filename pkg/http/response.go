package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONResponse writes body with the given status.
func JSONResponse(c echo.Context, status int, body interface{}) error {
	return c.JSON(status, body)
}

// OK writes a 200 response; body is expected to embed Envelope with OK set.
func OK(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}

// ValidationResponse writes a 400 envelope for binding/validation failures.
// The first error becomes the headline message.
func ValidationResponse(c echo.Context, errs []ValidationError) error {
	env := Envelope{OK: false, Error: "Invalid request"}
	if len(errs) > 0 {
		env.Error = errs[0].Message
	}
	if len(errs) > 1 {
		env.Details = errs
	}
	return c.JSON(http.StatusBadRequest, env)
}

// ErrorResponse writes the envelope for err. AppErrors keep their status; anything
// else is a 500 carrying the error message. Diagnostics are included only when asked.
func ErrorResponse(c echo.Context, err error, withDiagnostic bool) error {
	if appErr, ok := AsAppError(err); ok {
		env := Envelope{OK: false, Error: appErr.Message}
		if withDiagnostic && appErr.Diagnostic != nil {
			env.Debug = appErr.Diagnostic
		}
		return c.JSON(appErr.Status, env)
	}
	msg := "Unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, Envelope{OK: false, Error: msg})
}
