package domain

import "math"

// Position - точка на плоскости. Ось Y смотрит на "север".
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add возвращает сумму векторов.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub возвращает разность векторов.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// DistanceTo возвращает расстояние до другой точки.
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// DistanceSquaredTo - квадрат расстояния, для сравнения без корней.
func (p Position) DistanceSquaredTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Length - длина вектора от начала координат.
func (p Position) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Shift возвращает новую позицию со смещением.
func (p Position) Shift(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
