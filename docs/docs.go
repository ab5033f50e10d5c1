// Package docs registers the purchasing OpenAPI document with swag so that the
// swagger UI served by echo-swagger can read it.
package docs

import (
	"purchasing/internal/generated/servers"

	"github.com/swaggo/swag"
)

type openAPIDoc struct{}

// ReadDoc renders the embedded document as JSON, the form the swagger UI fetches.
func (openAPIDoc) ReadDoc() string {
	doc, err := servers.GetSwagger()
	if err != nil {
		return "{}"
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func init() {
	swag.Register(swag.Name, openAPIDoc{})
}
