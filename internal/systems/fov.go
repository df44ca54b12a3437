package systems

import (
	"math"
	"sort"

	"hivelings-server/internal/domain"
)

// Vision - параметры зрения. Углы в градусах.
type Vision struct {
	FieldOfView             float64 `yaml:"fieldOfViewDeg" json:"fieldOfViewDeg"`
	SightDistance           float64 `yaml:"sightDistance" json:"sightDistance"`
	PeripheralFieldOfView   float64 `yaml:"peripheralFieldOfViewDeg" json:"peripheralFieldOfViewDeg"`
	PeripheralSightDistance float64 `yaml:"peripheralSightDistance" json:"peripheralSightDistance"`
	SliverWidth             float64 `yaml:"sliverDeg" json:"sliverDeg"`
	InteractionArea         Rect    `yaml:"interactionArea" json:"interactionArea"`
}

// DefaultVision: основной конус 0.71π на 6, периферийный 1.2π на 1.5.
func DefaultVision() Vision {
	return Vision{
		FieldOfView:             ToDeg(0.71 * math.Pi),
		SightDistance:           6,
		PeripheralFieldOfView:   ToDeg(1.2 * math.Pi),
		PeripheralSightDistance: 1.5,
		SliverWidth:             1,
		InteractionArea:         DefaultInteractionArea(),
	}
}

// Endpoint - где заканчивается обзор одного сектора (в локальных координатах).
type Endpoint struct {
	Angle     float64          `json:"angle"`
	Distance  float64          `json:"distance"`
	Position  domain.Position  `json:"position"`
	BlockedBy *domain.EntityID `json:"blockedBy,omitempty"`
}

// rangeAt - дальность обзора в направлении bearing: объединение двух конусов.
func (v Vision) rangeAt(bearing float64) float64 {
	a := math.Abs(bearing)
	r := 0.0
	if a <= v.FieldOfView/2 {
		r = v.SightDistance
	}
	if a <= v.PeripheralFieldOfView/2 && v.PeripheralSightDistance > r {
		r = v.PeripheralSightDistance
	}
	return r
}

// sightCandidate - сущность в локальной системе с угловыми размерами.
type sightCandidate struct {
	entity   domain.Entity
	distance float64
	bearing  float64
	extent   float64 // половина углового размера
}

// ComputeVisibleEntities делит объединенный угол обзора на сектора ширины ~SliverWidth.
// В каждом секторе сущности сортируются по расстоянию; первая непрозрачная
// (препятствие или хивлинг) видна и закрывает все, что дальше.
// Возвращает множество видимых ID и концы секторов.
func ComputeVisibleEntities(observer domain.Entity, locals []domain.Entity, v Vision) (map[domain.EntityID]bool, []Endpoint) {
	span := math.Max(v.FieldOfView, v.PeripheralFieldOfView)
	visible := make(map[domain.EntityID]bool)
	if span <= 0 || v.SliverWidth <= 0 {
		return visible, nil
	}
	if span > 360 {
		span = 360
	}

	candidates := make([]sightCandidate, 0, len(locals))
	for _, e := range locals {
		if e.ID == observer.ID {
			continue
		}
		d := e.Pos.Length()
		extent := 180.0
		if d > e.Radius {
			extent = ToDeg(math.Asin(e.Radius / d))
		}
		candidates = append(candidates, sightCandidate{entity: e, distance: d, bearing: Bearing(e.Pos), extent: extent})
	}
	// Ближние первыми; при равенстве - верхние по zIndex, затем по ID
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if a.entity.ZIndex != b.entity.ZIndex {
			return a.entity.ZIndex > b.entity.ZIndex
		}
		return a.entity.ID < b.entity.ID
	})

	// 1e-9 гасит ошибку округления в ToDeg(1.2π) = 216.00000000000003
	n := int(math.Ceil(span/v.SliverWidth - 1e-9))
	if n < 1 {
		n = 1
	}
	width := span / float64(n)
	endpoints := make([]Endpoint, 0, n)

	for i := 0; i < n; i++ {
		center := -span/2 + width*(float64(i)+0.5)
		limit := v.rangeAt(center)
		end := Endpoint{Angle: center, Distance: limit}

		for _, c := range candidates {
			if c.distance-c.entity.Radius > limit {
				continue
			}
			if math.Abs(OrientationDiff(c.bearing, center)) > c.extent+width/2 {
				continue
			}
			visible[c.entity.ID] = true
			if c.entity.Type.IsOpaque() {
				id := c.entity.ID
				end.Distance = math.Max(c.distance-c.entity.Radius, 0)
				end.BlockedBy = &id
				break
			}
		}
		end.Position = PointAt(center, end.Distance)
		endpoints = append(endpoints, end)
	}

	return visible, endpoints
}
