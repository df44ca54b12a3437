package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/pkg/api"
)

func entity(t string, x, y float64) api.Entity {
	return api.Entity{Type: t, Position: api.Position{X: x, Y: y}, Radius: 0.5}
}

func strPtr(s string) *string { return &s }

func TestThink(t *testing.T) {
	tests := []struct {
		name     string
		in       api.Input
		expected string
	}{
		{
			name:     "Pickup interactable food",
			in:       api.Input{MaxMoveDistance: 1, InteractableEntities: []api.Entity{entity("FOOD", 0, 1)}},
			expected: "PICKUP",
		},
		{
			name: "Carrying food ignores food",
			in: api.Input{MaxMoveDistance: 1, HasFood: true,
				InteractableEntities: []api.Entity{entity("FOOD", 0, 1)},
				VisibleEntities:      []api.Entity{entity("HIVE_ENTRANCE", 0, 4)}},
			expected: "MOVE",
		},
		{
			name:     "Drop at hive entrance",
			in:       api.Input{MaxMoveDistance: 1, HasFood: true, InteractableEntities: []api.Entity{entity("HIVE_ENTRANCE", 0.2, 1)}},
			expected: "DROP",
		},
		{
			name:     "Turn toward visible food",
			in:       api.Input{MaxMoveDistance: 1, VisibleEntities: []api.Entity{entity("FOOD", 3, 0)}},
			expected: "TURN",
		},
		{
			name:     "Blocked waits",
			in:       api.Input{MaxMoveDistance: 0},
			expected: "WAIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Think(tt.in)
			assert.Equal(t, tt.expected, out.Decision.Type)
			require.NoError(t, out.Validate())
			assert.Less(t, len([]rune(out.Memory)), 128)
		})
	}
}

func TestTurnFacesTarget(t *testing.T) {
	out := Think(api.Input{MaxMoveDistance: 1, VisibleEntities: []api.Entity{entity("FOOD", 3, 0)}})
	require.NotNil(t, out.Decision.Degrees)
	assert.InDelta(t, 90, *out.Decision.Degrees, 1e-9)

	out = Think(api.Input{MaxMoveDistance: 1, VisibleEntities: []api.Entity{entity("FOOD", -3, 0)}})
	assert.InDelta(t, -90, *out.Decision.Degrees, 1e-9)
}

func TestMoveStopsShortOfTarget(t *testing.T) {
	out := Think(api.Input{MaxMoveDistance: 1, VisibleEntities: []api.Entity{entity("FOOD", 0, 1.2)}})
	require.Equal(t, "MOVE", out.Decision.Type)
	assert.InDelta(t, 0.7, *out.Decision.Distance, 1e-9)
}

func TestDeadlockResolution(t *testing.T) {
	mem := strPtr("")
	// Несколько ходов без продвижения: ждем, потом поворачиваем
	var out api.Output
	for i := 0; i < blockedLimit; i++ {
		out = Think(api.Input{MaxMoveDistance: 0, Memory: mem, RandomSeed: "seed"})
		mem = strPtr(out.Memory)
	}
	assert.Equal(t, "TURN", out.Decision.Type)
	assert.Contains(t, []float64{90, 180, 270}, *out.Decision.Degrees)

	// После поворота - шаг, если есть место
	out = Think(api.Input{MaxMoveDistance: 1, Memory: mem, RandomSeed: "seed"})
	assert.Equal(t, "MOVE", out.Decision.Type)
}

func TestDeterministic(t *testing.T) {
	in := api.Input{MaxMoveDistance: 1, RandomSeed: "abcdefghijklmnop"}
	a, err := NewBot().Decide(context.Background(), in)
	require.NoError(t, err)
	b, err := NewBot().Decide(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCorruptMemoryIsIgnored(t *testing.T) {
	out := Think(api.Input{MaxMoveDistance: 1, Memory: strPtr("{not json"), InteractableEntities: []api.Entity{entity("FOOD", 0, 1)}})
	assert.Equal(t, "PICKUP", out.Decision.Type)
}
