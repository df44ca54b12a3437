package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"hivelings-server/internal/domain"
	"hivelings-server/pkg/api"
)

var (
	// ErrReplayExhausted - записанные ответы кончились раньше прогона.
	ErrReplayExhausted = errors.New("replay exhausted")
	// ErrReplayDiverged - прогон спросил не того хивлинга, что в записи.
	ErrReplayDiverged = errors.New("replay diverged")
)

// ReplayMind отдает записанные ответы разума в том же порядке.
type ReplayMind struct {
	mu        sync.Mutex
	decisions []domain.ReplayDecision
	pos       int
}

// NewReplayMind проверяет записи заранее: неизвестный тег решения
// в реплее - ошибка конфигурации, а не штраф.
func NewReplayMind(decisions []domain.ReplayDecision) (*ReplayMind, error) {
	for i, d := range decisions {
		var out api.Output
		if err := json.Unmarshal(d.Output, &out); err != nil {
			return nil, fmt.Errorf("replay record %d: %w", i, err)
		}
		// Пустой тег - записанное невалидное решение
		if out.Decision.Type == "" {
			continue
		}
		if _, err := domain.ParseDecisionStrict(out.Decision.Type); err != nil {
			return nil, fmt.Errorf("replay record %d: %w", i, err)
		}
	}
	return &ReplayMind{decisions: decisions}, nil
}

func (m *ReplayMind) Decide(ctx context.Context, _ api.Input) (api.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pos >= len(m.decisions) {
		return api.Output{}, ErrReplayExhausted
	}
	rec := m.decisions[m.pos]
	if id, ok := HivelingIDFrom(ctx); ok && id != rec.HivelingID {
		return api.Output{}, fmt.Errorf("%w: record %d is for %s, asked for %s", ErrReplayDiverged, m.pos, rec.HivelingID, id)
	}
	m.pos++

	var out api.Output
	if err := json.Unmarshal(rec.Output, &out); err != nil {
		return api.Output{}, err
	}
	return out, nil
}

// Remaining - сколько записей еще не отдано.
func (m *ReplayMind) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.decisions) - m.pos
}

// ErrReplayMismatch - повторный прогон пришел к другому состоянию.
var ErrReplayMismatch = errors.New("replay digest mismatch")

// RunReplay повторяет записанную сессию и сверяет итоговый дайджест.
func RunReplay(ctx context.Context, session *domain.ReplaySession, initial *domain.SimulationState, opts StepOptions) (*domain.SimulationState, error) {
	mind, err := NewReplayMind(session.Decisions)
	if err != nil {
		return nil, err
	}

	state := initial
	for state.Tick < session.FinalTick {
		state, _, err = Step(ctx, state, mind, opts)
		if err != nil {
			return nil, err
		}
	}

	if left := mind.Remaining(); left != 0 {
		return state, fmt.Errorf("%w: %d records left unused", ErrReplayDiverged, left)
	}
	if got := state.Digest(); got != session.FinalDigest {
		return state, fmt.Errorf("%w: got %s, recorded %s", ErrReplayMismatch, got, session.FinalDigest)
	}
	return state, nil
}
