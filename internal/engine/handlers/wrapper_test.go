package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/pkg/api"
)

func TestWithPayloadValidates(t *testing.T) {
	var got *float64
	h := WithPayload(func(_ Context, p api.MovePayload) (Result, error) {
		got = p.Distance
		return EmptyResult(), nil
	})

	_, err := h(Context{}, json.RawMessage(`{"type":"MOVE","distance":0.5}`))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.5, *got)

	tests := map[string]string{
		"missing field": `{"type":"MOVE"}`,
		"wrong type":    `{"distance":"far"}`,
		"not json":      `{`,
		"empty":         ``,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := h(Context{}, json.RawMessage(raw))
			assert.ErrorIs(t, err, ErrInvalidDecision)
		})
	}
}

func TestWithEmptyPayloadIgnoresParams(t *testing.T) {
	called := false
	h := WithEmptyPayload(func(Context) (Result, error) {
		called = true
		return Penalty(-1, "x"), nil
	})

	res, err := h(Context{}, json.RawMessage(`garbage`))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, MsgPenalty, res.MsgType)
	assert.Equal(t, -1, res.ScoreDelta)
}
