package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/internal/domain"
)

func visibleTypes(p Perception) map[domain.EntityID]domain.EntityType {
	out := make(map[domain.EntityID]domain.EntityType)
	for _, e := range p.VisibleEntities {
		out[e.ID] = e.Type
	}
	return out
}

func TestPerceive_ObstacleOccludesFood(t *testing.T) {
	s, id := newWorld(0,
		domain.NewObstacle(at(0, 3), domain.ObstacleStyleRocks),
		domain.NewFood(at(0, 5)),
	)
	obstacle, food := domain.EntityID(1), domain.EntityID(2)

	p, err := Perceive(s, id, DefaultVision())
	require.NoError(t, err)

	seen := visibleTypes(p)
	assert.Contains(t, seen, obstacle)
	assert.NotContains(t, seen, food)
}

func TestPerceive_HivelingOccludesFood(t *testing.T) {
	s, id := newWorld(0,
		domain.NewHiveling(at(0, 2.5), 180, false),
		domain.NewFood(at(0, 5)),
	)

	p, err := Perceive(s, id, DefaultVision())
	require.NoError(t, err)

	seen := visibleTypes(p)
	assert.Contains(t, seen, domain.EntityID(1))
	assert.NotContains(t, seen, domain.EntityID(2))
}

func TestPerceive_FoodIsTransparent(t *testing.T) {
	s, id := newWorld(0,
		domain.NewFood(at(0, 2)),
		domain.NewFood(at(0, 4)),
	)

	p, err := Perceive(s, id, DefaultVision())
	require.NoError(t, err)
	assert.Len(t, p.VisibleEntities, 2)
}

func TestPerceive_Cones(t *testing.T) {
	tests := []struct {
		name    string
		pos     domain.Position
		visible bool
	}{
		{"ahead within sight", at(0, 6.4), true},
		{"ahead beyond sight", at(0, 7), false},
		{"side within peripheral range", at(1.2, 0), true},
		{"side beyond peripheral range", at(3, 0), false},
		{"behind", at(0, -1.2), false},
		{"forward diagonal inside main cone", at(3, 3), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, id := newWorld(0, domain.NewFood(tt.pos))
			p, err := Perceive(s, id, DefaultVision())
			require.NoError(t, err)
			assert.Equal(t, tt.visible, len(p.VisibleEntities) == 1)
		})
	}
}

func TestPerceive_LocalFrame(t *testing.T) {
	s, id := newWorld(90, domain.NewFood(at(5, 0)))

	p, err := Perceive(s, id, DefaultVision())
	require.NoError(t, err)
	require.Len(t, p.VisibleEntities, 1)

	pos := p.VisibleEntities[0].Pos
	assert.InDelta(t, 0, pos.X, eps)
	assert.InDelta(t, 5, pos.Y, eps)
}

func TestPerceive_Endpoints(t *testing.T) {
	s, id := newWorld(0, domain.NewObstacle(at(0, 3), ""))
	v := DefaultVision()

	p, err := Perceive(s, id, v)
	require.NoError(t, err)
	require.Len(t, p.VisibilityEndpoints, 216)

	blocked := 0
	for _, end := range p.VisibilityEndpoints {
		if end.BlockedBy != nil {
			blocked++
			assert.Equal(t, domain.EntityID(1), *end.BlockedBy)
			assert.InDelta(t, 2.5, end.Distance, eps)
			continue
		}
		assert.Contains(t, []float64{v.SightDistance, v.PeripheralSightDistance}, end.Distance)
	}
	assert.Greater(t, blocked, 0)
}

func TestPerceive_UnknownHiveling(t *testing.T) {
	s, _ := newWorld(0, domain.NewFood(at(0, 1)))

	_, err := Perceive(s, 42, DefaultVision())
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	_, err = Perceive(s, 1, DefaultVision())
	assert.ErrorIs(t, err, domain.ErrNotHiveling)
}
