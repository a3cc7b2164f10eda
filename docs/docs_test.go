package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerInfoBasic(t *testing.T) {
	require.NotNil(t, SwaggerInfo)
	assert.Equal(t, "GlucoTrack API", SwaggerInfo.Title)
	assert.Contains(t, SwaggerInfo.SwaggerTemplate, "paths")
}

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	for _, path := range []string{"/alert/glycemia", "/doctor/dashboard", "/doctor/therapy", "/patient/glycemic-log", "/doctor/patients", "/patient/daily-resume", "/healthz"} {
		assert.Contains(t, parsed.Paths, path)
	}
}
