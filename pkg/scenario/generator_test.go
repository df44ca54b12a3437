package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/internal/domain"
)

func TestBase(t *testing.T) {
	s := Base()

	assert.Equal(t, 4, s.Count(domain.EntityTypeHiveling))
	assert.Equal(t, 4, s.Count(domain.EntityTypeHiveEntrance))
	assert.Equal(t, 19*2+2*33, s.Count(domain.EntityTypeObstacle))
	assert.Equal(t, 11*5, s.Count(domain.EntityTypeFood))
	assert.Equal(t, domain.EntityID(len(s.Entities)), s.NextID)
	require.NoError(t, s.Validate())

	// Ориентации: 0, 105, 210, 315
	for i, id := range s.Hivelings() {
		h, _ := s.Entity(id)
		assert.Equal(t, float64((i*105)%360), h.Hiveling.Orientation)
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a, b := Random(), Random()
	assert.Equal(t, a.Digest(), b.Digest())

	assert.Equal(t, RandomHivelings, a.Count(domain.EntityTypeHiveling))
	assert.Equal(t, RandomHives, a.Count(domain.EntityTypeHiveEntrance))
	assert.Equal(t, RandomFood, a.Count(domain.EntityTypeFood))
	assert.Equal(t, RandomObstacles+32*2+2*33, a.Count(domain.EntityTypeObstacle))
	require.NoError(t, a.Validate())

	for _, e := range a.Entities {
		if e.Type == domain.EntityTypeObstacle {
			assert.Contains(t, []string{domain.ObstacleStyleRocks, domain.ObstacleStyleTreeStump}, e.Obstacle.Style)
		}
	}
}

func TestLoad(t *testing.T) {
	s, err := Load("base")
	require.NoError(t, err)
	assert.Equal(t, Base().Digest(), s.Digest())

	_, err = Load("MAZE")
	assert.ErrorIs(t, err, ErrUnknownScenario)
	assert.Equal(t, []string{NameBase, NameRandom}, Names())
}

func TestGrid(t *testing.T) {
	got := Grid([]float64{1, 2}, []float64{3, 4})
	assert.Equal(t, []domain.Position{{X: 1, Y: 3}, {X: 1, Y: 4}, {X: 2, Y: 3}, {X: 2, Y: 4}}, got)
	assert.Equal(t, []float64{-1, 0, 1}, Range(-1, 2))
}
