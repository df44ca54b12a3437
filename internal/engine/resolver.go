package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/engine/handlers/actions"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
)

var decisionHandlers = actions.Registry()

// ApplyDecision применяет ответ разума к состоянию: решение, счет, память и show.
// Плохое решение - вина агента и превращается в штраф. Ошибка возвращается
// только если сломан сам движок (например, хивлинга нет в состоянии).
func ApplyDecision(state *domain.SimulationState, actor domain.Entity, p systems.Perception, out api.Output) (handlers.Result, error) {
	res, err := resolve(state, actor, p, out.Decision)
	if err != nil {
		return handlers.Result{}, err
	}
	state.AddScore(res.ScoreDelta)

	// Память сохраняется всегда, show - только если разум его вернул
	memory := out.Memory
	show := ""
	if out.Show != nil {
		show = *out.Show
	}
	if err := state.UpdateHiveling(actor.ID, domain.HivelingUpdate{Memory: &memory, Show: &show}); err != nil {
		return handlers.Result{}, err
	}
	return res, nil
}

func resolve(state *domain.SimulationState, actor domain.Entity, p systems.Perception, d api.Decision) (handlers.Result, error) {
	if actor.Hiveling == nil {
		return handlers.Result{}, fmt.Errorf("resolve %s: %w", actor.ID, domain.ErrNotHiveling)
	}

	// Форма решения проверяется до json.Marshal: NaN и Inf в нем не кодируются
	if err := d.Validate(); err != nil {
		return handlers.Penalty(domain.ScoreInvalid, fmt.Sprintf("Хивлинг %s: %v.", actor.ID, err)), nil
	}

	handler, ok := decisionHandlers[domain.ParseDecision(d.Type)]
	if !ok {
		return handlers.Penalty(domain.ScoreInvalid, fmt.Sprintf("Хивлинг %s: неизвестное решение %q.", actor.ID, d.Type)), nil
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return handlers.Result{}, err
	}

	ctx := handlers.Context{State: state, Actor: actor, Perception: p}
	res, err := handler(ctx, raw)
	if errors.Is(err, handlers.ErrInvalidDecision) {
		return handlers.Penalty(domain.ScoreInvalid, fmt.Sprintf("Хивлинг %s: %v.", actor.ID, err)), nil
	}
	return res, err
}

// sanitizeOutput стирает решение неверной формы (неизвестный тег, нет параметра,
// NaN или Inf), чтобы в реплей попадали только строки, которые можно разобрать.
func sanitizeOutput(out api.Output) api.Output {
	if out.Decision.Validate() != nil {
		out.Decision = api.Decision{}
	}
	return out
}
