// Package api carries the REST contract shared by the partner client and the
// development backend. The contract is embedded so both sides validate
// traffic against the same document.
package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed openapi.yml
var contract []byte

// Raw returns a copy of the contract as written.
func Raw() []byte {
	out := make([]byte, len(contract))
	copy(out, contract)
	return out
}

// Load parses and validates the embedded contract.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(contract)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	return doc, nil
}

// NewRouter loads the contract and builds a router that resolves requests
// to contract operations by method and path.
func NewRouter(ctx context.Context) (*openapi3.T, routers.Router, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("build openapi router: %w", err)
	}
	return doc, router, nil
}
