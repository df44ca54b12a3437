package engine

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// newWorld создает мир с хивлингом в начале координат, смотрящим на orientation.
func newWorld(orientation float64, hasFood bool, others ...domain.Entity) (*domain.SimulationState, domain.EntityID) {
	s := domain.NewState("engine-test")
	id := s.Insert(domain.NewHiveling(domain.Position{}, orientation, hasFood))
	for _, e := range others {
		s.Insert(e)
	}
	return s, id
}

func at(x, y float64) domain.Position { return domain.Position{X: x, Y: y} }

// apply считает восприятие и применяет ответ, как это делает тик.
func apply(t *testing.T, s *domain.SimulationState, id domain.EntityID, out api.Output) handlers.Result {
	t.Helper()
	p, err := systems.Perceive(s, id, systems.DefaultVision())
	require.NoError(t, err)
	actor, ok := s.Entity(id)
	require.True(t, ok)

	res, err := ApplyDecision(s, actor, p, out)
	require.NoError(t, err)
	return res
}

func hiveling(t *testing.T, s *domain.SimulationState, id domain.EntityID) domain.Entity {
	t.Helper()
	e, ok := s.Entity(id)
	require.True(t, ok)
	require.NotNil(t, e.Hiveling)
	return e
}

func decide(d api.Decision) api.Output {
	return api.Output{Decision: d}
}
