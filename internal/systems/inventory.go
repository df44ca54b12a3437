package systems

import (
	"errors"
	"fmt"

	"hivelings-server/internal/domain"
)

var (
	ErrAlreadyCarrying = errors.New("already carrying food")
	ErrNothingToPickup = errors.New("no food in interaction area")
	ErrNotCarrying     = errors.New("not carrying food")
)

// --- PICKUP ---

// TryPickup убирает верхнюю еду из области взаимодействия и отдает ее хивлингу.
func TryPickup(state *domain.SimulationState, actor domain.Entity, interactable []domain.Entity) (string, error) {
	if actor.Hiveling.HasFood {
		return "", ErrAlreadyCarrying
	}
	food, ok := TopEntityOfType(interactable, domain.EntityTypeFood)
	if !ok {
		return "", ErrNothingToPickup
	}

	state.RemoveEntity(food.ID)
	carrying := true
	if err := state.UpdateHiveling(actor.ID, domain.HivelingUpdate{HasFood: &carrying}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Хивлинг %s подбирает еду %s.", actor.ID, food.ID), nil
}

// --- DROP ---

// DropOutcome - куда делась еда.
type DropOutcome int

const (
	DropDelivered DropOutcome = iota // в улей, еда исчезает
	DropPlaced                       // положена на землю перед хивлингом
)

// TryDrop отдает еду улью, если вход в области взаимодействия, иначе кладет ее перед собой.
func TryDrop(state *domain.SimulationState, actor domain.Entity, interactable []domain.Entity) (DropOutcome, string, error) {
	if !actor.Hiveling.HasFood {
		return 0, "", ErrNotCarrying
	}

	carrying := false
	if err := state.UpdateHiveling(actor.ID, domain.HivelingUpdate{HasFood: &carrying}); err != nil {
		return 0, "", err
	}

	if _, ok := TopEntityOfType(interactable, domain.EntityTypeHiveEntrance); ok {
		return DropDelivered, fmt.Sprintf("Хивлинг %s приносит еду в улей.", actor.ID), nil
	}

	pos := FromAgentFrame(actor.Pos, actor.Hiveling.Orientation, domain.Position{Y: domain.DropDistance})
	id := state.Insert(domain.NewFood(pos))
	return DropPlaced, fmt.Sprintf("Хивлинг %s кладет еду %s.", actor.ID, id), nil
}
