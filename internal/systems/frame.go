package systems

import (
	"math"

	"hivelings-server/internal/domain"
)

// Система координат: 0° - "север" (+Y), углы растут по часовой стрелке.
// Локальная система хивлинга: он в начале координат и смотрит на 0°.

func ToRad(deg float64) float64 { return deg * math.Pi / 180 }
func ToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Rotate поворачивает вектор на deg градусов по часовой стрелке.
func Rotate(deg float64, p domain.Position) domain.Position {
	sin, cos := math.Sincos(ToRad(deg))
	return domain.Position{
		X: p.X*cos + p.Y*sin,
		Y: -p.X*sin + p.Y*cos,
	}
}

// ToAgentFrame переводит мировую точку в локальную систему агента:
// сдвиг на -origin, затем поворот на -orientation.
func ToAgentFrame(origin domain.Position, orientation float64, world domain.Position) domain.Position {
	return Rotate(-orientation, world.Sub(origin))
}

// FromAgentFrame - точная обратная операция к ToAgentFrame.
func FromAgentFrame(origin domain.Position, orientation float64, local domain.Position) domain.Position {
	return Rotate(orientation, local).Add(origin)
}

// OrientationDiff - кратчайшая знаковая разность a-b в (-180, 180].
func OrientationDiff(a, b float64) float64 {
	d := domain.NormalizeDegrees(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}

// Bearing - направление на локальную точку относительно "вперед", в (-180, 180].
// Положительные значения - справа.
func Bearing(local domain.Position) float64 {
	return ToDeg(math.Atan2(local.X, local.Y))
}

// PointAt - локальная точка на расстоянии dist в направлении bearing.
func PointAt(bearing, dist float64) domain.Position {
	sin, cos := math.Sincos(ToRad(bearing))
	return domain.Position{X: dist * sin, Y: dist * cos}
}

// ToLocal возвращает копию сущности в системе координат наблюдателя.
// Ориентации хивлингов и следов становятся относительными, в (-180, 180].
func ToLocal(observer domain.Entity, e domain.Entity) domain.Entity {
	orientation := observer.Hiveling.Orientation
	local := e.Clone()
	local.Pos = ToAgentFrame(observer.Pos, orientation, e.Pos)
	if local.Hiveling != nil {
		local.Hiveling.Orientation = OrientationDiff(local.Hiveling.Orientation, orientation)
	}
	if local.Trail != nil {
		local.Trail.Orientation = OrientationDiff(local.Trail.Orientation, orientation)
	}
	return local
}
