package api

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var knownDecisions = map[string]bool{
	"WAIT": true, "TURN": true, "MOVE": true, "PICKUP": true, "DROP": true,
}

// Validate проверяет форму решения. Диапазоны (например, distance > maxMoveDistance)
// проверяет движок: это штраф, а не ошибка формы.
func (d Decision) Validate() error {
	kind := strings.ToUpper(d.Type)
	if !knownDecisions[kind] {
		return fmt.Errorf("unknown decision type %q", d.Type)
	}
	switch kind {
	case "TURN":
		if d.Degrees == nil {
			return errors.New("turn requires degrees")
		}
		if math.IsNaN(*d.Degrees) || math.IsInf(*d.Degrees, 0) {
			return errors.New("degrees must be finite")
		}
	case "MOVE":
		if d.Distance == nil {
			return errors.New("move requires distance")
		}
		if math.IsNaN(*d.Distance) || math.IsInf(*d.Distance, 0) {
			return errors.New("distance must be finite")
		}
	}
	return nil
}

func (o Output) Validate() error {
	return o.Decision.Validate()
}

func (r MindRequest) Validate() error {
	if r.Type != MsgDecide {
		return fmt.Errorf("unexpected request type %q", r.Type)
	}
	return nil
}
