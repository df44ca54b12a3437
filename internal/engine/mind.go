package engine

import (
	"context"

	"hivelings-server/internal/domain"
	"hivelings-server/pkg/api"
)

// Mind - внешний разум хивлинга. Вызывается по одному разу на хивлинга за тик.
// Ошибка означает сбой транспорта, а не плохое решение.
type Mind interface {
	Decide(ctx context.Context, in api.Input) (api.Output, error)
}

// MindFunc позволяет использовать обычную функцию как Mind.
type MindFunc func(ctx context.Context, in api.Input) (api.Output, error)

func (f MindFunc) Decide(ctx context.Context, in api.Input) (api.Output, error) {
	return f(ctx, in)
}

type hivelingKey struct{}

// WithHivelingID кладет в контекст ID хивлинга, за которого думает разум.
// Разуму он не передается, но нужен обвязке (реплеи, логи транспорта).
func WithHivelingID(ctx context.Context, id domain.EntityID) context.Context {
	return context.WithValue(ctx, hivelingKey{}, id)
}

// HivelingIDFrom достает ID хивлинга из контекста.
func HivelingIDFrom(ctx context.Context) (domain.EntityID, bool) {
	id, ok := ctx.Value(hivelingKey{}).(domain.EntityID)
	return id, ok
}
