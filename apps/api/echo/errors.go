package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/registry"
	"github.com/campuspay/campuspay/core/student"
)

var (
	errStudentNotAuthed = echo.NewHTTPError(http.StatusUnauthorized, "no student is logged in")
	errAdminNotAuthed   = echo.NewHTTPError(http.StatusUnauthorized, "no administrator is logged in")
	errMobileUnverified = echo.NewHTTPError(http.StatusForbidden, "mobile account not verified")
	errHttpForbidden    = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch origErr {
			case student.ErrInvalidCredentials, admin.ErrInvalidCredentials,
				student.ErrEmailExists, student.ErrInvalidCode,
				student.ErrInsufficientFunds:
				code = http.StatusBadRequest
				message = origErr.Error()
			case student.ErrNotAuthenticated:
				code = errStudentNotAuthed.Code
				message = errStudentNotAuthed.Message
			case admin.ErrNotAuthenticated:
				code = errAdminNotAuthed.Code
				message = errAdminNotAuthed.Message
			case student.ErrOperationInFlight, admin.ErrOperationInFlight,
				registry.ErrNotPending:
				code = http.StatusConflict
				message = origErr.Error()
			case registry.ErrNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
