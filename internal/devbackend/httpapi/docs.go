package httpapi

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

var registerDocs sync.Once

// contractDoc serves the embedded contract to the swagger UI.
type contractDoc struct {
	json string
}

func (d contractDoc) ReadDoc() string {
	return d.json
}

// registerSwagger makes doc the document behind /swagger/doc.json. The
// registry is process-wide, so only the first call takes effect.
func registerSwagger(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerDocs.Do(func() {
		swag.Register(swag.Name, contractDoc{json: string(raw)})
	})
	return nil
}
