// Package scenario строит стартовые состояния симуляции.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"hivelings-server/internal/domain"
	"hivelings-server/pkg/rng"
)

// ErrUnknownScenario - ошибка конфигурации: такого сценария нет.
var ErrUnknownScenario = errors.New("unknown scenario")

const (
	NameBase   = "BASE"
	NameRandom = "RANDOM"
)

// Параметры случайного сценария
const (
	RandomHivelings = 10
	RandomHives     = 2
	RandomFood      = 50
	RandomObstacles = 35
	RandomSpread    = 15
	Border          = 16
)

var generators = map[string]func() *domain.SimulationState{
	NameBase:   Base,
	NameRandom: Random,
}

// Load возвращает стартовое состояние сценария по имени (без учета регистра).
func Load(name string) (*domain.SimulationState, error) {
	gen, ok := generators[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	return gen(), nil
}

// Names - список известных сценариев.
func Names() []string {
	names := make([]string, 0, len(generators))
	for n := range generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Base - фиксированная карта: 4 хивлинга, 4 входа в улей, забор и ряды еды.
func Base() *domain.SimulationState {
	b := NewBuilder("baseScenarioSeed")

	b.Hivelings(105,
		domain.Position{X: 1, Y: 4},
		domain.Position{X: -3, Y: 12},
		domain.Position{X: 0, Y: -6},
		domain.Position{X: 2, Y: 2},
	)
	b.HiveEntrances(Grid([]float64{-5, 5}, []float64{-5, 5})...)
	b.Obstacles(nil, Grid(Range(-9, 10), []float64{-Border, Border})...)
	b.Obstacles(nil, Grid([]float64{-10, 10}, Range(-Border, Border+1))...)
	b.Food(Grid(Range(-5, 6), []float64{-15, -14, 0, 14, 15})...)

	return b.Build()
}

// Random - случайная расстановка внутри забора ±16.
func Random() *domain.SimulationState {
	b := NewBuilder("randomScenarioSeed")
	r := b.Rng()

	for i := 0; i < RandomHivelings; i++ {
		pos := b.RandomPosition(-RandomSpread, RandomSpread)
		hasFood := r.Integer(0, 2) == 0
		orientation := float64(r.Integer(0, 359))
		b.Add(domain.NewHiveling(pos, orientation, hasFood))
	}
	for i := 0; i < RandomHives; i++ {
		b.HiveEntrances(b.RandomPosition(-RandomSpread, RandomSpread))
	}
	for i := 0; i < RandomFood; i++ {
		b.Food(b.RandomPosition(-RandomSpread, RandomSpread))
	}
	for i := 0; i < RandomObstacles; i++ {
		pos := b.RandomPosition(-RandomSpread, RandomSpread)
		b.Obstacles(styleAbove(r, 3), pos)
	}

	border := append(
		Grid(Range(-Border, Border), []float64{-Border, Border}),
		Grid([]float64{-Border, Border}, Range(-Border, Border+1))...,
	)
	b.Obstacles(styleAbove(r, 7), border...)

	return b.Build()
}

func styleAbove(r *rng.Rng, threshold int) func() string {
	return func() string {
		if r.Integer(0, 10) > threshold {
			return domain.ObstacleStyleTreeStump
		}
		return domain.ObstacleStyleRocks
	}
}
