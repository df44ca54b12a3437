package engine

import (
	"hivelings-server/internal/domain"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
)

// BuildInput собирает запрос к разуму из восприятия хивлинга.
func BuildInput(self domain.Entity, p systems.Perception, randomSeed string, debugIdentifiers bool) api.Input {
	in := api.Input{
		MaxMoveDistance:      p.MaxMoveDistance,
		InteractableEntities: EntityViews(p.InteractableEntities, debugIdentifiers),
		VisibleEntities:      EntityViews(p.VisibleEntities, debugIdentifiers),
		RandomSeed:           randomSeed,
	}
	if self.Hiveling != nil {
		in.HasFood = self.Hiveling.HasFood
		// Пустая память уходит как null
		if self.Hiveling.Memory != "" {
			memory := self.Hiveling.Memory
			in.Memory = &memory
		}
	}
	return in
}

// EntityViews переводит сущности (уже в локальной системе) в DTO протокола.
func EntityViews(entities []domain.Entity, withIdentifier bool) []api.Entity {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	out := make([]api.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, EntityView(e, withIdentifier))
	}
	return out
}

// EntityView отдает только поля, уместные для типа сущности.
// Память и show хивлинга наружу не уходят.
func EntityView(e domain.Entity, withIdentifier bool) api.Entity {
	v := api.Entity{
		Type:     string(e.Type),
		Position: api.Position{X: e.Pos.X, Y: e.Pos.Y},
		Radius:   e.Radius,
		ZIndex:   e.ZIndex,
	}
	if withIdentifier {
		id := int64(e.ID)
		v.Identifier = &id
	}

	switch {
	case e.Hiveling != nil:
		hasFood := e.Hiveling.HasFood
		orientation := e.Hiveling.Orientation
		v.HasFood = &hasFood
		v.Orientation = &orientation
	case e.Trail != nil:
		orientation := e.Trail.Orientation
		lifetime := e.Trail.Lifetime
		v.Orientation = &orientation
		v.Lifetime = &lifetime
	case e.Obstacle != nil:
		v.Style = e.Obstacle.Style
	}
	return v
}

// WorldView - мир целиком в мировых координатах, для наблюдателей.
func WorldView(state *domain.SimulationState) []api.Entity {
	out := make([]api.Entity, 0, len(state.Entities))
	for _, e := range state.Entities {
		v := EntityView(e, true)
		if e.Hiveling != nil {
			v.Show = e.Hiveling.Show
		}
		out = append(out, v)
	}
	return out
}
