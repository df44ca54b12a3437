package actions

import (
	"errors"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/systems"
)

func HandleDrop(ctx handlers.Context) (handlers.Result, error) {
	outcome, msg, err := systems.TryDrop(ctx.State, ctx.Actor, ctx.Perception.InteractableEntities)
	if errors.Is(err, systems.ErrNotCarrying) {
		return handlers.Penalty(domain.ScoreInvalid, "Нечего бросать."), nil
	}
	if err != nil {
		return handlers.Result{}, err
	}

	res := handlers.Result{Msg: msg, MsgType: handlers.MsgInfo}
	if outcome == systems.DropDelivered {
		res.ScoreDelta = domain.ScoreFoodDelivered
	}
	return res, nil
}
