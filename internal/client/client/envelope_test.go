package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestDecodeResult_TypedPayload(t *testing.T) {
	env := &Envelope{
		Success:    true,
		Data:       json.RawMessage(`[{"id":1,"title":"Service"},{"id":2,"title":"Study"}]`),
		Pagination: &Pagination{Page: 1, Limit: 20, Total: 2, Pages: 1},
	}

	res, err := DecodeResult[[]testEvent](env)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Study", res.Data[1].Title)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, 2, res.Pagination.Total)
}

func TestDecodeResult_FailureEnvelope_SkipsData(t *testing.T) {
	env := &Envelope{
		Success: false,
		Message: "not found",
		// Some backends still echo a data field on failure; it must be ignored.
		Data: json.RawMessage(`"unexpected"`),
	}

	res, err := DecodeResult[testEvent](env)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "not found", res.Message)
	assert.Zero(t, res.Data)
}

func TestDecodeResult_MismatchedPayload(t *testing.T) {
	env := &Envelope{Success: true, Data: json.RawMessage(`{"id":"not-a-number"}`)}

	_, err := DecodeResult[testEvent](env)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestEnvelope_RoundTripFromWire(t *testing.T) {
	raw := `{"success":true,"message":"ok","data":{"id":5,"title":"Choir"},"pagination":null}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	res, err := DecodeResult[testEvent](&env)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Data.ID)
	assert.Nil(t, res.Pagination)
}
