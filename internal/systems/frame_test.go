package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hivelings-server/internal/domain"
)

const eps = 1e-9

func TestRotateClockwise(t *testing.T) {
	got := Rotate(90, at(0, 1))
	assert.InDelta(t, 1, got.X, eps)
	assert.InDelta(t, 0, got.Y, eps)

	got = Rotate(180, at(0, 1))
	assert.InDelta(t, 0, got.X, eps)
	assert.InDelta(t, -1, got.Y, eps)
}

func TestAgentFrameRoundTrip(t *testing.T) {
	origins := []domain.Position{at(0, 0), at(3.5, -2), at(-12, 7.25)}
	orientations := []float64{0, 45, 90, 179.5, 270, 359}
	points := []domain.Position{at(0, 1), at(-4, 4), at(10.5, -0.3)}

	for _, o := range origins {
		for _, deg := range orientations {
			for _, p := range points {
				back := FromAgentFrame(o, deg, ToAgentFrame(o, deg, p))
				assert.InDelta(t, p.X, back.X, eps)
				assert.InDelta(t, p.Y, back.Y, eps)
			}
		}
	}
}

func TestToAgentFrameFacingEast(t *testing.T) {
	// Хивлинг в (2,2) смотрит на восток: точка восточнее него - прямо по курсу
	local := ToAgentFrame(at(2, 2), 90, at(5, 2))
	assert.InDelta(t, 0, local.X, eps)
	assert.InDelta(t, 3, local.Y, eps)

	// Точка севернее - слева
	local = ToAgentFrame(at(2, 2), 90, at(2, 4))
	assert.InDelta(t, -2, local.X, eps)
	assert.InDelta(t, 0, local.Y, eps)
}

func TestOrientationDiff(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 350, 20},
		{350, 10, -20},
		{180, 0, 180},
		{0, 180, 180},
		{90, 90, 0},
		{270, 0, -90},
		{-45, 45, -90},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, OrientationDiff(tt.a, tt.b), eps, "OrientationDiff(%v, %v)", tt.a, tt.b)
	}
}

func TestToLocalRelativeOrientation(t *testing.T) {
	observer := domain.NewHiveling(at(0, 0), 300, false)
	other := domain.NewHiveling(at(1, 1), 20, true)

	local := ToLocal(observer, other)
	assert.InDelta(t, 80, local.Hiveling.Orientation, eps)
	assert.True(t, local.Hiveling.HasFood)
	assert.Equal(t, 20.0, other.Hiveling.Orientation, "source entity must not change")
}

func TestBearing(t *testing.T) {
	assert.InDelta(t, 0, Bearing(at(0, 2)), eps)
	assert.InDelta(t, 90, Bearing(at(2, 0)), eps)
	assert.InDelta(t, -90, Bearing(at(-2, 0)), eps)
	assert.InDelta(t, 180, Bearing(at(0, -2)), eps)
}
