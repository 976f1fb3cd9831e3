package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadFromClaims(t *testing.T) {
	payload, err := payloadFromClaims(map[string]interface{}{
		"email":          "ana@example.com",
		"email_verified": true,
		"given_name":     "Ana",
		"family_name":    "Souza",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", payload.Email)
	assert.Equal(t, "Ana", payload.FirstName)
	assert.Equal(t, "Souza", payload.LastName)
}

func TestPayloadFromClaims_NameFallback(t *testing.T) {
	payload, err := payloadFromClaims(map[string]interface{}{
		"email": "ana@example.com",
		"name":  "Ana Souza",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", payload.FirstName)
	assert.Empty(t, payload.LastName)
}

func TestPayloadFromClaims_Rejected(t *testing.T) {
	_, err := payloadFromClaims(map[string]interface{}{"name": "No Email"})
	assert.Error(t, err)

	_, err = payloadFromClaims(map[string]interface{}{"email": "ana@example.com", "email_verified": false})
	assert.Error(t, err)
}
