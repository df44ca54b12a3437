package actions

import (
	"fmt"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
)

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:        fmt.Sprintf("Хивлинг %s ждет.", ctx.Actor.ID),
		MsgType:    handlers.MsgInfo,
		ScoreDelta: domain.ScoreWait,
	}, nil
}
