package router

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"arcadestore/internal/errors"
	"arcadestore/internal/handler"
	"arcadestore/internal/middleware"
	"arcadestore/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	gameHandler *handler.GameHandler,
	commerceHandler *handler.CommerceHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = newErrorHandler(logger)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "arcadestore API is running"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/games", gameHandler.List)
	api.GET("/games/:id", gameHandler.Get)
	api.GET("/games/:id/rankings", commerceHandler.Rankings)

	// Secured routes: bearer token verified, then the account resolved from
	// storage and attached to the request context.
	secured := api.Group("", authMW.VerifyToken(), authMW.AttachAccount())

	secured.GET("/auth/profile", authHandler.Profile)

	secured.POST("/games", gameHandler.Create)
	secured.PUT("/games/:id", gameHandler.Update)
	secured.DELETE("/games/:id", gameHandler.Delete)

	secured.POST("/games/purchase", commerceHandler.Purchase)
	secured.GET("/games/user/library", commerceHandler.Library)
	secured.POST("/games/submit-score", commerceHandler.SubmitScore)
}

// CustomValidator wraps validator for Echo. Field names in error details use
// the json tag, and the objectid tag checks 24-hex identifiers.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the validator used for all request payloads.
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return model.IsValidID(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// newErrorHandler renders every error as the JSON error envelope. Unmatched
// routes become a 404; anything unrecognized is logged and reported as a
// generic server error.
func newErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errors.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		}

		var httpErr *echo.HTTPError
		if stderrors.As(err, &httpErr) {
			status = httpErr.Code
			switch msg := httpErr.Message.(type) {
			case errors.ErrorResponse:
				body = msg
			case string:
				body = errors.ErrorResponse{Error: msg}
				if status == http.StatusNotFound {
					body = errors.ErrorResponse{Error: "route not found", Code: "NOT_FOUND"}
				}
			default:
				body = errors.ErrorResponse{Error: http.StatusText(status)}
			}
		}

		// Faults reach the client as a generic 500; the full detail is logged
		// server-side only.
		if status == http.StatusInternalServerError {
			cause := err
			if httpErr != nil && httpErr.Internal != nil {
				cause = httpErr.Internal
			}
			logger.Error("unhandled request error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(cause),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", zap.Error(writeErr))
		}
	}
}
