package actions

import (
	"fmt"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/pkg/api"
)

func HandleTurn(ctx handlers.Context, p api.TurnPayload) (handlers.Result, error) {
	degrees := domain.NormalizeDegrees(*p.Degrees)
	// Поворот, который ничего не поворачивает - потраченное впустую усилие
	if degrees == 0 {
		return handlers.Penalty(domain.ScoreInvalid, fmt.Sprintf("Хивлинг %s поворачивается на 0°.", ctx.Actor.ID)), nil
	}

	orientation := ctx.Actor.Hiveling.Orientation + degrees
	if err := ctx.State.UpdateHiveling(ctx.Actor.ID, domain.HivelingUpdate{Orientation: &orientation}); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
