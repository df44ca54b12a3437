package systems

import (
	"math"

	"hivelings-server/internal/domain"
)

// Rect - прямоугольник в локальной системе хивлинга.
type Rect struct {
	Left   float64 `yaml:"left" json:"left"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Top    float64 `yaml:"top" json:"top"`
}

// DefaultInteractionArea - область прямо перед хивлингом.
func DefaultInteractionArea() Rect {
	return Rect{Left: -0.5, Right: 0.5, Bottom: 0.5, Top: 1.001}
}

// IntersectsCircle: круг пересекает прямоугольник (касание не считается).
func (r Rect) IntersectsCircle(center domain.Position, radius float64) bool {
	closest := domain.Position{
		X: clamp(center.X, r.Left, r.Right),
		Y: clamp(center.Y, r.Bottom, r.Top),
	}
	return closest.DistanceTo(center) < radius
}

// Contains: точка внутри прямоугольника.
func (r Rect) Contains(p domain.Position) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// InteractableEntities - сущности, с которыми можно взаимодействовать (Pickup/Drop).
// Не зависит от конуса зрения.
func InteractableEntities(observer domain.Entity, locals []domain.Entity, area Rect) []domain.Entity {
	out := make([]domain.Entity, 0)
	for _, e := range locals {
		if e.ID == observer.ID {
			continue
		}
		if area.IntersectsCircle(e.Pos, e.Radius) || (e.Radius == 0 && area.Contains(e.Pos)) {
			out = append(out, e)
		}
	}
	return out
}

// TopEntityOfType - верхняя по zIndex сущность типа t (при равенстве - меньший ID).
func TopEntityOfType(entities []domain.Entity, t domain.EntityType) (domain.Entity, bool) {
	var best domain.Entity
	found := false
	for _, e := range entities {
		if e.Type != t {
			continue
		}
		if !found || e.ZIndex > best.ZIndex || (e.ZIndex == best.ZIndex && e.ID < best.ID) {
			best = e
			found = true
		}
	}
	return best, found
}

// Nearest - ближайшая к наблюдателю локальная сущность типа t.
func Nearest(entities []domain.Entity, t domain.EntityType) (domain.Entity, bool) {
	var best domain.Entity
	bestDist := math.Inf(1)
	for _, e := range entities {
		if e.Type != t {
			continue
		}
		if d := e.Pos.Length(); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
