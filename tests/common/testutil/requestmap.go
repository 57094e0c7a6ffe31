//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits the JSON form of a request before it is sent.
type Mutation func(body map[string]any)

// RequestMap round-trips v through JSON so tests can break individual fields of an
// otherwise valid request body.
func RequestMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	for _, mut := range muts {
		mut(body)
	}
	return body
}

// Field sets key to value, or removes it when value is nil.
func Field(key string, value any) Mutation {
	return func(body map[string]any) {
		if value == nil {
			delete(body, key)
			return
		}
		body[key] = value
	}
}
