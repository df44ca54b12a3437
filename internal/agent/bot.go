package agent

import (
	"context"
	"encoding/json"
	"math"

	"hivelings-server/pkg/api"
	"hivelings-server/pkg/rng"
)

// Bot - демонстрационный разум: ищет еду и несет ее к входу в улей.
//
// Логика хода:
//  1. Если идет разрешение тупика - чередуем поворот на случайный угол и шаг.
//  2. Еда в области взаимодействия и руки пусты - PICKUP.
//  3. Несем еду и вход рядом - DROP.
//  4. Видим цель - поворачиваемся к ней или идем к ней.
//  5. Целей нет - бродим.
//
// Все состояние между ходами живет в памяти хивлинга (JSON, несколько десятков байт).
type Bot struct{}

func NewBot() *Bot {
	return &Bot{}
}

// Константы поведения
const (
	aimTolerance   = 5.0  // градусов: цель считается "прямо по курсу"
	minStep        = 0.05 // шаг короче этого - мы уперлись
	blockedLimit   = 4    // ходов без продвижения до разрешения тупика
	deadlockRounds = 4    // пар "поворот + шаг" при разрешении тупика
)

type memory struct {
	BlockedFront int  `json:"b"`
	Deadlock     int  `json:"d"`
	JustTurned   bool `json:"t"`
}

func deserialize(s *string) memory {
	var m memory
	if s == nil || *s == "" {
		return m
	}
	// Битая память - начинаем с чистого листа
	if err := json.Unmarshal([]byte(*s), &m); err != nil {
		return memory{}
	}
	return m
}

func (m memory) serialize() string {
	b, _ := json.Marshal(m)
	return string(b)
}

func (b *Bot) Decide(_ context.Context, in api.Input) (api.Output, error) {
	return Think(in), nil
}

// Think - чистая функция решения, удобна для тестов.
func Think(in api.Input) api.Output {
	mem := deserialize(in.Memory)
	r := rng.Seed(in.RandomSeed)

	decision, show := think(in, &mem, r)
	return api.Output{Decision: decision, Memory: mem.serialize(), Show: &show}
}

func think(in api.Input, mem *memory, r *rng.Rng) (api.Decision, string) {
	// 1. Разрешение тупика
	if mem.Deadlock > 0 {
		if mem.JustTurned && in.MaxMoveDistance >= minStep {
			mem.JustTurned = false
			mem.Deadlock--
			return api.Move(in.MaxMoveDistance), "unstuck"
		}
		mem.JustTurned = true
		return api.Turn(randomQuarter(r)), "unstuck"
	}

	// 2-3. Взаимодействие
	if !in.HasFood && hasType(in.InteractableEntities, "FOOD") {
		mem.reset()
		return api.Pickup(), "pickup"
	}
	if in.HasFood && hasType(in.InteractableEntities, "HIVE_ENTRANCE") {
		mem.reset()
		return api.Drop(), "drop"
	}

	want, show := "FOOD", "search"
	if in.HasFood {
		want, show = "HIVE_ENTRANCE", "home"
	}

	// 4. Идем к цели
	if target, ok := nearest(in.VisibleEntities, want); ok {
		bearing := bearingOf(target.Position)
		if math.Abs(bearing) > aimTolerance {
			mem.JustTurned = true
			return api.Turn(bearing), show
		}
		dist := math.Hypot(target.Position.X, target.Position.Y)
		step := math.Min(in.MaxMoveDistance, dist-target.Radius)
		if step < minStep {
			return blocked(mem, r), show
		}
		mem.reset()
		return api.Move(step), show
	}

	// 5. Бродим: после поворота всегда шаг, иначе обычно шаг
	if in.MaxMoveDistance < minStep {
		return blocked(mem, r), show
	}
	if mem.JustTurned || r.Integer(0, 4) != 0 {
		mem.reset()
		return api.Move(in.MaxMoveDistance), show
	}
	mem.JustTurned = true
	return api.Turn(randomQuarter(r)), show
}

// blocked считает ходы без продвижения и запускает разрешение тупика.
func blocked(mem *memory, r *rng.Rng) api.Decision {
	mem.BlockedFront++
	if mem.BlockedFront < blockedLimit {
		mem.JustTurned = false
		return api.Wait()
	}
	*mem = memory{Deadlock: deadlockRounds, JustTurned: true}
	return api.Turn(randomQuarter(r))
}

func (m *memory) reset() {
	*m = memory{}
}

func randomQuarter(r *rng.Rng) float64 {
	q, _ := rng.PickRandom(r, []float64{90, 180, 270})
	return q
}

func hasType(entities []api.Entity, t string) bool {
	for _, e := range entities {
		if e.Type == t {
			return true
		}
	}
	return false
}

func nearest(entities []api.Entity, t string) (api.Entity, bool) {
	var (
		best  api.Entity
		found bool
		bestD = math.Inf(1)
	)
	for _, e := range entities {
		if e.Type != t {
			continue
		}
		if d := math.Hypot(e.Position.X, e.Position.Y); d < bestD {
			best, bestD, found = e, d, true
		}
	}
	return best, found
}

// bearingOf - угол на точку в локальной системе, (-180, 180], по часовой от "вперед".
func bearingOf(p api.Position) float64 {
	return math.Atan2(p.X, p.Y) * 180 / math.Pi
}
