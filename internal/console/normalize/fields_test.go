package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat(t *testing.T) {
	type payment struct {
		Amount FlexFloat `json:"amount"`
	}

	cases := []struct {
		name string
		body string
		want float64
	}{
		{"number", `{"amount": 1500.5}`, 1500.5},
		{"stringified number", `{"amount": "1500.50"}`, 1500.5},
		{"stringified integer", `{"amount": "200"}`, 200},
		{"null", `{"amount": null}`, 0},
		{"empty string", `{"amount": ""}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p payment
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.want, p.Amount.Float64())
		})
	}

	t.Run("non-numeric string errors", func(t *testing.T) {
		var p payment
		assert.Error(t, json.Unmarshal([]byte(`{"amount": "a lot"}`), &p))
	})
}

func TestFlexInt(t *testing.T) {
	type stock struct {
		Quantity FlexInt `json:"quantity"`
	}

	var s stock
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": "42"}`), &s))
	assert.Equal(t, 42, s.Quantity.Int())

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 7}`), &s))
	assert.Equal(t, 7, s.Quantity.Int())

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": null}`), &s))
	assert.Equal(t, 0, s.Quantity.Int())
}

func TestDisplayLabel(t *testing.T) {
	cases := map[string]string{
		"PAID":           "Paid",
		"PARTIALLY_PAID": "Partially Paid",
		"IN_TRANSIT":     "In Transit",
		"UNPAID":         "Unpaid",
		"Already Nice":   "Already Nice",
		"mixedCase":      "mixedCase",
		"":               "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, DisplayLabel(raw), "input %q", raw)
	}
}

func TestTimestamp(t *testing.T) {
	type record struct {
		CreatedAt Timestamp `json:"createdAt"`
	}

	t.Run("rfc3339", func(t *testing.T) {
		var r record
		require.NoError(t, json.Unmarshal([]byte(`{"createdAt":"2025-03-14T09:26:53Z"}`), &r))
		assert.Equal(t, "2025-03-14", r.CreatedAt.DateOnly())
		assert.Equal(t, "09:26", r.CreatedAt.TimeOnly())
	})

	t.Run("space separated", func(t *testing.T) {
		var r record
		require.NoError(t, json.Unmarshal([]byte(`{"createdAt":"2025-03-14 09:26:53"}`), &r))
		assert.Equal(t, "2025-03-14", r.CreatedAt.DateOnly())
	})

	t.Run("date only", func(t *testing.T) {
		var r record
		require.NoError(t, json.Unmarshal([]byte(`{"createdAt":"2025-03-14"}`), &r))
		assert.Equal(t, "2025-03-14", r.CreatedAt.DateOnly())
		assert.Equal(t, "00:00", r.CreatedAt.TimeOnly())
	})

	t.Run("null and empty yield blanks", func(t *testing.T) {
		var r record
		require.NoError(t, json.Unmarshal([]byte(`{"createdAt":null}`), &r))
		assert.True(t, r.CreatedAt.IsZero())
		assert.Equal(t, "", r.CreatedAt.DateOnly())
		assert.Equal(t, "", r.CreatedAt.TimeOnly())
	})

	t.Run("garbage errors", func(t *testing.T) {
		var r record
		assert.Error(t, json.Unmarshal([]byte(`{"createdAt":"last tuesday"}`), &r))
	})

	t.Run("round trips through marshal", func(t *testing.T) {
		r := record{CreatedAt: Timestamp{time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)}}
		out, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"createdAt":"2025-03-14T09:26:53Z"}`, string(out))
	})
}
