package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivelings-server/internal/domain"
)

func perceiveActor(t *testing.T, s *domain.SimulationState, id domain.EntityID) (domain.Entity, Perception) {
	t.Helper()
	actor, ok := s.Entity(id)
	require.True(t, ok)
	p, err := Perceive(s, id, DefaultVision())
	require.NoError(t, err)
	return actor, p
}

func TestTryPickup(t *testing.T) {
	s, id := newWorld(0, domain.NewFood(at(0, 1)))
	actor, p := perceiveActor(t, s, id)

	_, err := TryPickup(s, actor, p.InteractableEntities)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count(domain.EntityTypeFood))

	actor, p = perceiveActor(t, s, id)
	assert.True(t, actor.Hiveling.HasFood)
	_, err = TryPickup(s, actor, p.InteractableEntities)
	assert.ErrorIs(t, err, ErrAlreadyCarrying)
}

func TestTryPickupNothing(t *testing.T) {
	s, id := newWorld(0, domain.NewFood(at(0, 3)))
	actor, p := perceiveActor(t, s, id)

	_, err := TryPickup(s, actor, p.InteractableEntities)
	assert.ErrorIs(t, err, ErrNothingToPickup)
	assert.Equal(t, 1, s.Count(domain.EntityTypeFood))
}

func TestTryDrop(t *testing.T) {
	t.Run("into hive", func(t *testing.T) {
		s, id := newWorld(0, domain.NewHiveEntrance(at(0, 1)))
		carrying := true
		require.NoError(t, s.UpdateHiveling(id, domain.HivelingUpdate{HasFood: &carrying}))
		actor, p := perceiveActor(t, s, id)

		outcome, _, err := TryDrop(s, actor, p.InteractableEntities)
		require.NoError(t, err)
		assert.Equal(t, DropDelivered, outcome)
		assert.Equal(t, 0, s.Count(domain.EntityTypeFood))
	})

	t.Run("on the ground", func(t *testing.T) {
		s, id := newWorld(90)
		carrying := true
		require.NoError(t, s.UpdateHiveling(id, domain.HivelingUpdate{HasFood: &carrying}))
		actor, p := perceiveActor(t, s, id)

		outcome, _, err := TryDrop(s, actor, p.InteractableEntities)
		require.NoError(t, err)
		assert.Equal(t, DropPlaced, outcome)
		require.Equal(t, 1, s.Count(domain.EntityTypeFood))
		food := s.Entities[len(s.Entities)-1]
		assert.InDelta(t, 1, food.Pos.X, eps)
		assert.InDelta(t, 0, food.Pos.Y, eps)
	})

	t.Run("empty handed", func(t *testing.T) {
		s, id := newWorld(0)
		actor, p := perceiveActor(t, s, id)
		_, _, err := TryDrop(s, actor, p.InteractableEntities)
		assert.ErrorIs(t, err, ErrNotCarrying)
	})
}
