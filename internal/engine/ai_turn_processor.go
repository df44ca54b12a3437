package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
	"hivelings-server/pkg/rng"
)

// turnRecord - что произошло за ход одного хивлинга.
type turnRecord struct {
	HivelingID domain.EntityID
	Output     api.Output
	Result     handlers.Result
}

// processHivelingTurn: восприятие -> зерно -> разум -> резолвер.
// Решение применяется сразу, следующий хивлинг видит уже новое состояние.
func processHivelingTurn(ctx context.Context, state *domain.SimulationState, r *rng.Rng, mind Mind, id domain.EntityID, opts StepOptions) (turnRecord, error) {
	// 1. Что видит хивлинг
	perception, err := systems.Perceive(state, id, opts.Vision)
	if err != nil {
		return turnRecord{}, err
	}
	actor, _ := state.Entity(id)

	// 2. Свежее зерно на каждый вызов разума
	seed := r.RandomPrintableString(domain.RandomSeedLength)
	in := BuildInput(actor, perception, seed, opts.DebugIdentifiers)

	// 3. Вызов разума (может быть удаленным и медленным)
	out, err := mind.Decide(WithHivelingID(ctx, id), in)
	if err != nil {
		return turnRecord{}, fmt.Errorf("%w: hiveling %s: %w", ErrMindFailed, id, err)
	}
	out = sanitizeOutput(out)

	// 4. Применяем решение
	res, err := ApplyDecision(state, actor, perception, out)
	if err != nil {
		return turnRecord{}, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component":   "scheduler",
		"hiveling":    id,
		"decision":    out.Decision.Type,
		"score_delta": res.ScoreDelta,
	}).Debug("Decision applied")

	if res.MsgType == handlers.MsgPenalty {
		logger.Log.WithFields(logrus.Fields{
			"component": "scheduler",
			"hiveling":  id,
		}).Warn(res.Msg)
	}

	return turnRecord{HivelingID: id, Output: out, Result: res}, nil
}
