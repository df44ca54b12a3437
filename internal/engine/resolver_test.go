package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
)

func TestPickupFoodInFront(t *testing.T) {
	s, id := newWorld(0, false, domain.NewFood(at(0, 1)))

	res := apply(t, s, id, decide(api.Pickup()))

	assert.Equal(t, 0, res.ScoreDelta)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0, s.Count(domain.EntityTypeFood))
	assert.True(t, hiveling(t, s, id).Hiveling.HasFood)
}

func TestDropAtHiveEntrance(t *testing.T) {
	s, id := newWorld(0, true, domain.NewHiveEntrance(at(0, 1)))

	apply(t, s, id, decide(api.Drop()))

	assert.Equal(t, domain.ScoreFoodDelivered, s.Score)
	assert.False(t, hiveling(t, s, id).Hiveling.HasFood)
	assert.Equal(t, 0, s.Count(domain.EntityTypeFood))
}

func TestMoveLeavesTrail(t *testing.T) {
	tests := []struct {
		name        string
		orientation float64
		expected    domain.Position
	}{
		{"North", 0, at(0, 1)},
		{"East", 90, at(1, 0)},
		{"South", 180, at(0, -1)},
		{"West", 270, at(-1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := newWorld(tt.orientation, false)

			res := apply(t, s, id, decide(api.Move(1.0)))
			assert.Equal(t, 0, res.ScoreDelta)

			h := hiveling(t, s, id)
			assert.InDelta(t, tt.expected.X, h.Pos.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, h.Pos.Y, 1e-9)
			assert.Equal(t, tt.orientation, h.Hiveling.Orientation)

			require.Equal(t, 1, s.Count(domain.EntityTypeTrail))
			for _, e := range s.Entities {
				if e.Trail != nil {
					assert.Equal(t, domain.Position{}, e.Pos)
					assert.Equal(t, id, e.Trail.HivelingID)
					assert.Equal(t, tt.orientation, e.Trail.Orientation)
					assert.Equal(t, domain.TrailLifetime, e.Trail.Lifetime)
				}
			}
		})
	}
}

func TestMoveOntoTrailStacks(t *testing.T) {
	s, id := newWorld(0, false)
	apply(t, s, id, decide(api.Move(0.5)))

	// След лег поверх хивлинга (1), хивлинг после шага - поверх следа
	assert.Equal(t, 2, hiveling(t, s, id).ZIndex)
}

func TestNoOpsCostButDoNotMutate(t *testing.T) {
	tests := []struct {
		name     string
		decision api.Decision
	}{
		{"Turn 0", api.Turn(0)},
		{"Turn 360", api.Turn(360)},
		{"Turn -720", api.Turn(-720)},
		{"Move 0", api.Move(0)},
		{"Move negative", api.Move(-1)},
		{"Move beyond limit", api.Move(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := newWorld(45, false)

			res := apply(t, s, id, decide(tt.decision))

			assert.Equal(t, domain.ScoreInvalid, res.ScoreDelta)
			assert.Equal(t, domain.ScoreInvalid, s.Score)
			assert.Equal(t, handlers.MsgPenalty, res.MsgType)
			h := hiveling(t, s, id)
			assert.Equal(t, domain.Position{}, h.Pos)
			assert.Equal(t, 45.0, h.Hiveling.Orientation)
			assert.Equal(t, 0, s.Count(domain.EntityTypeTrail))
		})
	}
}

func TestTurnNormalizes(t *testing.T) {
	s, id := newWorld(350, false)
	apply(t, s, id, decide(api.Turn(-700)))

	// 350 + 20 = 370 -> 10
	assert.InDelta(t, 10, hiveling(t, s, id).Hiveling.Orientation, 1e-9)
	assert.Equal(t, 0, s.Score)
}

func TestMoveBoundRespected(t *testing.T) {
	// Препятствие в 1.5 впереди: касание после шага 0.5
	for _, d := range []float64{0.50001, 0.6, 1} {
		s, id := newWorld(0, false, domain.NewObstacle(at(0, 1.5), domain.ObstacleStyleRocks))
		apply(t, s, id, decide(api.Move(d)))
		assert.Equal(t, domain.Position{}, hiveling(t, s, id).Pos, "distance %v", d)
		assert.Equal(t, domain.ScoreInvalid, s.Score)
	}

	s, id := newWorld(0, false, domain.NewObstacle(at(0, 1.5), domain.ObstacleStyleRocks))
	apply(t, s, id, decide(api.Move(0.5)))
	assert.InDelta(t, 0.5, hiveling(t, s, id).Pos.Y, 1e-9)
}

func TestPickupDropConservation(t *testing.T) {
	s, id := newWorld(90, false, domain.NewFood(at(1, 0)))

	apply(t, s, id, decide(api.Pickup()))
	require.Equal(t, 0, s.Count(domain.EntityTypeFood))

	apply(t, s, id, decide(api.Drop()))
	require.Equal(t, 1, s.Count(domain.EntityTypeFood))
	assert.Equal(t, 0, s.Score)

	for _, e := range s.Entities {
		if e.Type == domain.EntityTypeFood {
			assert.InDelta(t, 1, e.Pos.X, 1e-9)
			assert.InDelta(t, 0, e.Pos.Y, 1e-9)
		}
	}
	assert.False(t, hiveling(t, s, id).Hiveling.HasFood)
}

func TestFailedInteractions(t *testing.T) {
	tests := []struct {
		name     string
		hasFood  bool
		others   []domain.Entity
		decision api.Decision
		expected int
	}{
		{"Pickup nothing", false, nil, api.Pickup(), domain.ScoreFailedPickup},
		{"Pickup food behind", false, []domain.Entity{domain.NewFood(at(0, -1))}, api.Pickup(), domain.ScoreFailedPickup},
		{"Pickup while carrying", true, []domain.Entity{domain.NewFood(at(0, 1))}, api.Pickup(), domain.ScoreFailedPickup},
		{"Drop empty handed", false, []domain.Entity{domain.NewHiveEntrance(at(0, 1))}, api.Drop(), domain.ScoreInvalid},
		{"Wait", false, nil, api.Wait(), domain.ScoreWait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := newWorld(0, tt.hasFood, tt.others...)
			before := len(s.Entities)

			res := apply(t, s, id, decide(tt.decision))

			assert.Equal(t, tt.expected, res.ScoreDelta)
			assert.Equal(t, tt.expected, s.Score)
			assert.Equal(t, before, len(s.Entities))
			assert.Equal(t, tt.hasFood, hiveling(t, s, id).Hiveling.HasFood)
		})
	}
}

func TestMalformedDecisionsArePenalties(t *testing.T) {
	tests := []struct {
		name     string
		decision api.Decision
	}{
		{"Unknown type", api.Decision{Type: "FLY"}},
		{"Empty type", api.Decision{}},
		{"Turn without degrees", api.Decision{Type: "TURN"}},
		{"Move without distance", api.Decision{Type: "MOVE"}},
		{"Turn NaN", api.Turn(math.NaN())},
		{"Turn +Inf", api.Turn(math.Inf(1))},
		{"Move -Inf", api.Move(math.Inf(-1))},
		{"Move NaN", api.Move(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := newWorld(0, false)
			res := apply(t, s, id, decide(tt.decision))
			assert.Equal(t, domain.ScoreInvalid, res.ScoreDelta)
			assert.Equal(t, handlers.MsgPenalty, res.MsgType)
		})
	}
}

func TestMemoryAndShowPersisted(t *testing.T) {
	s, id := newWorld(0, false)

	show := "hello"
	apply(t, s, id, api.Output{Decision: api.Wait(), Memory: strings.Repeat("ж", 200), Show: &show})
	h := hiveling(t, s, id)
	assert.Equal(t, domain.MemoryCap, len([]rune(h.Hiveling.Memory)))
	assert.Equal(t, "hello", h.Hiveling.Show)

	// Память сохраняется даже при штрафе, show без значения очищается
	apply(t, s, id, api.Output{Decision: api.Turn(0), Memory: "short"})
	h = hiveling(t, s, id)
	assert.Equal(t, "short", h.Hiveling.Memory)
	assert.Empty(t, h.Hiveling.Show)
}

func TestApplyDecisionRejectsNonHiveling(t *testing.T) {
	s, _ := newWorld(0, false)
	food := s.Insert(domain.NewFood(at(3, 3)))
	actor, _ := s.Entity(food)

	_, err := ApplyDecision(s, actor, systems.Perception{}, decide(api.Wait()))
	assert.ErrorIs(t, err, domain.ErrNotHiveling)
}

func TestTrailAging(t *testing.T) {
	s, id := newWorld(0, false)
	trail := s.Insert(domain.NewTrail(id, at(5, 5), 0))
	for i := range s.Entities {
		if s.Entities[i].ID == trail {
			s.Entities[i].Trail.Lifetime = 0
		}
	}

	s.AgeTrails()

	_, ok := s.Entity(trail)
	assert.False(t, ok)
}
