package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok)
	for _, p := range []string{"/", "/audit_contract", "/health", "/version"} {
		assert.Contains(t, paths, p)
	}
	assert.Equal(t, "Compliance Hawk API", doc["info"].(map[string]interface{})["title"])
}
