package actions

import (
	"fmt"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	res := systems.CalculateMove(ctx.Actor, *p.Distance, ctx.Perception.MaxMoveDistance)
	if !res.Valid {
		return handlers.Penalty(domain.ScoreInvalid, fmt.Sprintf(
			"Хивлинг %s не может пройти %.3f (доступно %.3f).",
			ctx.Actor.ID, *p.Distance, ctx.Perception.MaxMoveDistance,
		)), nil
	}

	// След остается на месте и с ориентацией ДО шага
	ctx.State.Insert(domain.NewTrail(ctx.Actor.ID, ctx.Actor.Pos, ctx.Actor.Hiveling.Orientation))

	z := ctx.State.ZIndexAt(res.Target, ctx.Actor.Radius, ctx.Actor.ID)
	if err := ctx.State.UpdateHiveling(ctx.Actor.ID, domain.HivelingUpdate{Pos: &res.Target, ZIndex: &z}); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}
