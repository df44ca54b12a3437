package scenario

import (
	"hivelings-server/internal/domain"
	"hivelings-server/pkg/rng"
)

// Builder предоставляет fluent API для сборки стартового состояния.
// Сущности вставляются в порядке вызовов: от этого зависят ID и zIndex.
type Builder struct {
	state *domain.SimulationState
	rng   *rng.Rng
}

// NewBuilder создает builder с генератором, засеянным seed.
func NewBuilder(seed string) *Builder {
	return &Builder{
		state: &domain.SimulationState{Entities: make([]domain.Entity, 0)},
		rng:   rng.Seed(seed),
	}
}

// Rng - генератор сценария (для случайной расстановки).
func (b *Builder) Rng() *rng.Rng {
	return b.rng
}

// RandomPosition - точка в квадрате [lo, hi)².
func (b *Builder) RandomPosition(lo, hi float64) domain.Position {
	x := b.rng.Float(lo, hi)
	y := b.rng.Float(lo, hi)
	return domain.Position{X: x, Y: y}
}

// Add вставляет произвольные сущности.
func (b *Builder) Add(entities ...domain.Entity) *Builder {
	for _, e := range entities {
		b.state.Insert(e)
	}
	return b
}

// Hivelings ставит хивлингов; ориентация i-го - (i*step) mod 360.
func (b *Builder) Hivelings(step float64, positions ...domain.Position) *Builder {
	for i, p := range positions {
		b.state.Insert(domain.NewHiveling(p, float64(i)*step, false))
	}
	return b
}

// HiveEntrances ставит входы в улей.
func (b *Builder) HiveEntrances(positions ...domain.Position) *Builder {
	for _, p := range positions {
		b.state.Insert(domain.NewHiveEntrance(p))
	}
	return b
}

// Food раскладывает еду.
func (b *Builder) Food(positions ...domain.Position) *Builder {
	for _, p := range positions {
		b.state.Insert(domain.NewFood(p))
	}
	return b
}

// Obstacles ставит препятствия; style вызывается для каждого (может тянуть генератор).
func (b *Builder) Obstacles(style func() string, positions ...domain.Position) *Builder {
	for _, p := range positions {
		s := ""
		if style != nil {
			s = style()
		}
		b.state.Insert(domain.NewObstacle(p, s))
	}
	return b
}

// WithRngState задает генератор, который получит симуляция.
func (b *Builder) WithRngState(s rng.State) *Builder {
	b.state.RngState = s
	return b
}

// Build возвращает готовое состояние. Если генератор не задан явно,
// симуляция продолжает генератор сценария.
func (b *Builder) Build() *domain.SimulationState {
	if len(b.state.RngState.Sequence) == 0 {
		b.state.RngState = b.rng.State()
	}
	return b.state
}

// Grid - декартово произведение: для каждого x все y.
func Grid(xs, ys []float64) []domain.Position {
	out := make([]domain.Position, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			out = append(out, domain.Position{X: x, Y: y})
		}
	}
	return out
}

// Range - целые lo..hi-1 как float64.
func Range(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, float64(i))
	}
	return out
}
