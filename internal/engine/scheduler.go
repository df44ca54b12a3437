package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
	"hivelings-server/pkg/rng"
)

// ErrMindFailed - разум не вернул ответ (таймаут, обрыв связи).
var ErrMindFailed = errors.New("mind failed")

// StepOptions - параметры тика.
type StepOptions struct {
	Vision           systems.Vision
	DebugIdentifiers bool
}

func DefaultStepOptions() StepOptions {
	return StepOptions{Vision: systems.DefaultVision()}
}

// TickReport - итог тика: порядок ходов, ответы разума и лог.
type TickReport struct {
	Tick    int // номер завершенного тика
	Order   []domain.EntityID
	Outputs []domain.ReplayDecision
	Logs    []api.LogEntry
}

// Step выполняет один тик над копией state.
// При любой ошибке возвращается исходный state без изменений.
func Step(ctx context.Context, state *domain.SimulationState, mind Mind, opts StepOptions) (*domain.SimulationState, TickReport, error) {
	next := state.Clone()
	report := TickReport{Tick: state.Tick + 1}

	// 1. Восстанавливаем генератор
	r, err := rng.Restore(next.RngState)
	if err != nil {
		return state, report, fmt.Errorf("step %d: %w", report.Tick, err)
	}

	// 2. Порядок ходов
	report.Order = TurnOrder(next, r)

	// 3. Хивлинги ходят строго по очереди
	for _, id := range report.Order {
		if err := ctx.Err(); err != nil {
			return state, report, err
		}

		rec, err := processHivelingTurn(ctx, next, r, mind, id, opts)
		if err != nil {
			return state, report, fmt.Errorf("step %d: %w", report.Tick, err)
		}

		entry, err := newReplayDecision(report.Tick, rec)
		if err != nil {
			return state, report, err
		}
		report.Outputs = append(report.Outputs, entry)
		report.Logs = append(report.Logs, newLogEntry(report.Tick, rec))
	}

	// 4. Старение следов и сохранение генератора
	pruned := next.AgeTrails()
	next.RngState = r.State()
	next.Tick = report.Tick

	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"tick":      next.Tick,
		"score":     next.Score,
		"hivelings": len(report.Order),
		"pruned":    pruned,
	}).Debug("Step finished")

	return next, report, nil
}
