package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/infrastructure/storage"
	"hivelings-server/pkg/logger"
	"hivelings-server/pkg/rng"
	"hivelings-server/pkg/scenario"
)

// BuildInitialState создает стартовое состояние: из снапшота, если задан путь,
// иначе из сценария.
func BuildInitialState(cfg Config, resumePath string) (*domain.SimulationState, error) {
	var (
		state *domain.SimulationState
		err   error
	)

	if resumePath != "" {
		state, err = storage.ReadSnapshot(resumePath)
		if err != nil {
			return nil, fmt.Errorf("resume: %w", err)
		}
	} else {
		state, err = scenario.Load(cfg.Scenario)
		if err != nil {
			return nil, err
		}
		if cfg.Seed != "" {
			state.RngState = rng.Seed(cfg.Seed).State()
		}
	}

	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"scenario":  cfg.Scenario,
		"resume":    resumePath,
		"tick":      state.Tick,
		"entities":  len(state.Entities),
		"hivelings": len(state.Hivelings()),
	}).Info("Initial state ready")

	return state, nil
}
