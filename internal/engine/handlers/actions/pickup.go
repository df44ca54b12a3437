package actions

import (
	"errors"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/systems"
)

func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	msg, err := systems.TryPickup(ctx.State, ctx.Actor, ctx.Perception.InteractableEntities)
	switch {
	case errors.Is(err, systems.ErrAlreadyCarrying), errors.Is(err, systems.ErrNothingToPickup):
		return handlers.Penalty(domain.ScoreFailedPickup, "Подбор не удался: "+err.Error()), nil
	case err != nil:
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: msg, MsgType: handlers.MsgInfo}, nil
}
