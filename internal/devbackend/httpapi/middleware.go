package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// validateRequests rejects requests the contract does not allow before they
// reach a handler. Paths outside the contract pass through untouched.
func validateRequests(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, errorJSON{Error: requestErrorMessage(err)})
			}
			return next(c)
		}
	}
}

func requestErrorMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			return "Invalid parameter " + reqErr.Parameter.Name
		case reqErr.RequestBody != nil:
			return "Invalid request body"
		}
	}
	return "Invalid request"
}

// logBearer records who is calling. Tokens are not enforced.
func logBearer(verify func(string) (string, error), logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			header := req.Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			switch {
			case header == "":
			case !ok:
				logger.WarnContext(req.Context(), "unsupported authorization scheme", "path", req.URL.Path)
			default:
				subject, err := verify(token)
				if err != nil {
					logger.WarnContext(req.Context(), "bearer token rejected", "path", req.URL.Path, "error", err)
				} else {
					logger.DebugContext(req.Context(), "request authenticated", "path", req.URL.Path, "partnerId", subject)
				}
			}
			return next(c)
		}
	}
}
