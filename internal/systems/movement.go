package systems

import (
	"math"

	"hivelings-server/internal/domain"
)

// MaxMoveDistance - на сколько можно сдвинуться вперед (в [0, MaxStep]),
// не пересекая препятствия и других хивлингов. locals - в системе наблюдателя.
func MaxMoveDistance(observer domain.Entity, locals []domain.Entity) float64 {
	best := domain.MaxStep
	for _, e := range locals {
		if e.ID == observer.ID || !e.Type.IsOpaque() {
			continue
		}
		reach := observer.Radius + e.Radius
		x, y := e.Pos.X, e.Pos.Y
		// Сбоку или позади - движение вперед не приближает к касанию
		if math.Abs(x) >= reach || y <= 0 {
			continue
		}
		d := clamp(y-math.Sqrt(reach*reach-x*x), 0, domain.MaxStep)
		if d < best {
			best = d
		}
	}
	return best
}

// MovementResult - результат проверки шага
type MovementResult struct {
	Valid  bool
	Target domain.Position
}

// CalculateMove проверяет шаг на distance вперед и считает мировую цель.
func CalculateMove(actor domain.Entity, distance, maxDistance float64) MovementResult {
	if math.IsNaN(distance) || distance <= 0 || distance > maxDistance {
		return MovementResult{}
	}
	target := FromAgentFrame(actor.Pos, actor.Hiveling.Orientation, domain.Position{Y: distance})
	return MovementResult{Valid: true, Target: target}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
