package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type room struct {
	ID     string `json:"id"`
	Number string `json:"roomNumber"`
}

func TestDecodeCollection_PagedEnvelope(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"id":"1","roomNumber":"R-101"}],"meta":{"total":1,"page":1,"limit":10}}`)

	got, err := DecodeCollection[room](raw, "rooms")
	require.NoError(t, err)

	assert.Equal(t, ShapePaged, got.Shape)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "R-101", got.Items[0].Number)
	require.NotNil(t, got.Meta)
	assert.Equal(t, 1, got.Meta.Total)
	assert.Equal(t, 1, got.Meta.Page)
	assert.Equal(t, 10, got.Meta.Limit)
}

func TestDecodeCollection_BareArray(t *testing.T) {
	raw := json.RawMessage(` [{"id":"1"},{"id":"2"}]`)

	got, err := DecodeCollection[room](raw, "rooms")
	require.NoError(t, err)

	assert.Equal(t, ShapeList, got.Shape)
	assert.Len(t, got.Items, 2)
	assert.Nil(t, got.Meta)
}

func TestDecodeCollection_ResourceKeyed(t *testing.T) {
	raw := json.RawMessage(`{"rooms":[{"id":"7","roomNumber":"R-207"}],"count":1}`)

	got, err := DecodeCollection[room](raw, "rooms")
	require.NoError(t, err)

	assert.Equal(t, ShapeKeyed, got.Shape)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "7", got.Items[0].ID)
}

func TestDecodeCollection_KeyedWinsOverData(t *testing.T) {
	// When both conventions appear the resource key is the more specific one.
	raw := json.RawMessage(`{"rooms":[{"id":"1"}],"data":[{"id":"9"}]}`)

	got, err := DecodeCollection[room](raw, "rooms")
	require.NoError(t, err)

	assert.Equal(t, ShapeKeyed, got.Shape)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "1", got.Items[0].ID)
}

func TestDecodeCollection_UnrecognizedShapesAreEmpty(t *testing.T) {
	cases := map[string]string{
		"empty object":   `{}`,
		"empty payload":  ``,
		"null":           `null`,
		"scalar":         `42`,
		"string":         `"no rooms"`,
		"object data":    `{"data":{"id":"1"}}`,
		"unrelated keys": `{"status":"ok","count":0}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeCollection[room](json.RawMessage(raw), "rooms")
			require.NoError(t, err)
			assert.Equal(t, ShapeEmpty, got.Shape)
			assert.NotNil(t, got.Items)
			assert.Empty(t, got.Items)
		})
	}
}

func TestDecodeCollection_CorruptItemsError(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"id":["not","a","string"]}]}`)

	_, err := DecodeCollection[room](raw, "rooms")
	assert.Error(t, err)
}

func TestDecodeCollection_PagedWithoutMeta(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"id":"1"}]}`)

	got, err := DecodeCollection[room](raw, "rooms")
	require.NoError(t, err)

	assert.Equal(t, ShapePaged, got.Shape)
	assert.Nil(t, got.Meta)
}

func TestDecodeOne(t *testing.T) {
	t.Run("plain record", func(t *testing.T) {
		got, err := DecodeOne[room](json.RawMessage(`{"id":"3","roomNumber":"R-303"}`))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "R-303", got.Number)
	})

	t.Run("data wrapped record", func(t *testing.T) {
		got, err := DecodeOne[room](json.RawMessage(`{"data":{"id":"3"}}`))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "3", got.ID)
	})

	t.Run("nil payload", func(t *testing.T) {
		got, err := DecodeOne[room](nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
