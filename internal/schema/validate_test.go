package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID    int    `json:"id"`
	Label string `json:"label,omitempty"`
}

type testDoc struct {
	Name  string     `json:"name"`
	Items []testItem `json:"items,omitempty"`
	Tags  []int      `json:"tags,omitempty"`
}

func TestForType(t *testing.T) {
	v, err := ForType(&testDoc{})
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		assert.NoError(t, v.Validate([]byte(`{"name":"a","items":[{"id":1,"label":"x"}],"tags":[2,4]}`)))
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		assert.NoError(t, v.Validate([]byte(`{"name":"a"}`)))
	})

	t.Run("unknown properties allowed", func(t *testing.T) {
		assert.NoError(t, v.Validate([]byte(`{"name":"a","app_version":13}`)))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := v.Validate([]byte(`{"items":[]}`))
		var schemaErr *Error
		require.ErrorAs(t, err, &schemaErr)
		assert.NotEmpty(t, schemaErr.Problems)
	})

	t.Run("missing required nested field", func(t *testing.T) {
		err := v.Validate([]byte(`{"name":"a","items":[{"label":"x"}]}`))
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		err := v.Validate([]byte(`{"name":"a","tags":["two"]}`))
		var schemaErr *Error
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Error(), "/tags/0")
	})

	t.Run("non-integer number", func(t *testing.T) {
		assert.Error(t, v.Validate([]byte(`{"name":"a","tags":[1.5]}`)))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		err := v.Validate([]byte(`{"name":`))
		var schemaErr *Error
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Problems[0], "invalid JSON")
	})
}

func TestMustForType(t *testing.T) {
	assert.NotPanics(t, func() { MustForType(&testDoc{}) })
}
