package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"hivelings-server/pkg/api"
)

// TypedHandlerFunc работает с уже разобранными и проверенными параметрами решения.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - решение без параметров (WAIT, PICKUP, DROP).
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload приводит типизированный хендлер к HandlerFunc.
// Любая ошибка разбора или проверки помечается ErrInvalidDecision: это вина разума, не движка.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, err := decodePayload[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

// WithEmptyPayload игнорирует параметры решения.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("%w: payload format: %v", ErrInvalidDecision, err)
	}

	// Параметры с методом Validate проверяются автоматически
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: %v", ErrInvalidDecision, err)
		}
	}
	return payload, nil
}
