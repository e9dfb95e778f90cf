package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Contains(t, doc.Paths, "/api/inventory/entries")
	for _, path := range []string{
		"/api/reports/kardex/{product_id}",
		"/api/reports/inventory",
		"/api/reports/movements",
		"/api/movements/{id}",
		"/api/audit",
		"/api/suppliers/{id}/restore",
	} {
		assert.Contains(t, doc.Paths, path)
	}
}
