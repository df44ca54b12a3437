package api

import (
	"errors"
	"math"
)

// TurnPayload - данные решения TURN.
type TurnPayload struct {
	Degrees *float64 `json:"degrees"`
}

// MovePayload - данные решения MOVE.
type MovePayload struct {
	Distance *float64 `json:"distance"`
}

func (p TurnPayload) Validate() error {
	if p.Degrees == nil {
		return errors.New("degrees is required")
	}
	if math.IsNaN(*p.Degrees) || math.IsInf(*p.Degrees, 0) {
		return errors.New("degrees must be finite")
	}
	return nil
}

func (p MovePayload) Validate() error {
	if p.Distance == nil {
		return errors.New("distance is required")
	}
	if math.IsNaN(*p.Distance) || math.IsInf(*p.Distance, 0) {
		return errors.New("distance must be finite")
	}
	return nil
}
