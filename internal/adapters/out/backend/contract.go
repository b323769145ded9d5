package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"deliverypartner/api"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

// ErrContractViolation is returned for a 2xx response the contract does not allow.
var ErrContractViolation = errors.New("response violates the API contract")

type contractValidator struct {
	router  routers.Router
	options *openapi3filter.Options
}

func newContractValidator(ctx context.Context) (*contractValidator, error) {
	_, router, err := api.NewRouter(ctx)
	if err != nil {
		return nil, err
	}
	return &contractValidator{
		router: router,
		options: &openapi3filter.Options{
			AuthenticationFunc:    openapi3filter.NoopAuthenticationFunc,
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}, nil
}

// validate checks a response against the operation req resolves to.
// basePath is the path prefix of the configured base URL; the contract's
// paths are relative to it.
func (v *contractValidator) validate(
	ctx context.Context,
	req *http.Request,
	basePath string,
	resp *http.Response,
	body []byte,
) error {
	probe := req.Clone(ctx)
	probe.Body = http.NoBody
	probe.URL.Path = strings.TrimPrefix(req.URL.Path, basePath)
	if probe.URL.RawPath != "" {
		probe.URL.RawPath = strings.TrimPrefix(req.URL.RawPath, basePath)
	}

	route, pathParams, err := v.router.FindRoute(probe)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrContractViolation, req.Method, probe.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    probe,
			PathParams: pathParams,
			Route:      route,
			Options:    v.options,
		},
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Options: v.options,
	}
	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrContractViolation, route.Operation.OperationID, err)
	}
	return nil
}
