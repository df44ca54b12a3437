package engine

import (
	"hivelings-server/internal/domain"
	"hivelings-server/pkg/rng"
)

// TurnOrder перемешивает хивлингов генератором состояния.
// Ни один хивлинг не получает преимущества от места в списке сущностей.
func TurnOrder(state *domain.SimulationState, r *rng.Rng) []domain.EntityID {
	return rng.Shuffle(r, state.Hivelings())
}

// DebugDump возвращает снимок очереди для отладки
func DebugDump(state *domain.SimulationState, order []domain.EntityID) []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0, len(order))

	for i, id := range order {
		row := map[string]interface{}{
			"index": i,
			"id":    id,
		}
		if e, ok := state.Entity(id); ok && e.Hiveling != nil {
			row["position"] = e.Pos
			row["orientation"] = e.Hiveling.Orientation
			row["hasFood"] = e.Hiveling.HasFood
		}
		result = append(result, row)
	}
	return result
}
