package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"hivelings-server/internal/domain"
	"hivelings-server/pkg/logger"
)

// Perception - что видит хивлинг. Все позиции - в его локальной системе.
type Perception struct {
	Observer             domain.EntityID `json:"observer"`
	VisibleEntities      []domain.Entity `json:"visibleEntities"`
	InteractableEntities []domain.Entity `json:"interactableEntities"`
	MaxMoveDistance      float64         `json:"maxMoveDistance"`
	VisibilityEndpoints  []Endpoint      `json:"visibilityEndpoints"`
}

// Perceive считает восприятие хивлинга id в состоянии state.
func Perceive(state *domain.SimulationState, id domain.EntityID, v Vision) (Perception, error) {
	observer, ok := state.Entity(id)
	if !ok {
		return Perception{}, fmt.Errorf("perceive %s: %w", id, domain.ErrEntityNotFound)
	}
	if observer.Hiveling == nil {
		return Perception{}, fmt.Errorf("perceive %s: %w", id, domain.ErrNotHiveling)
	}

	locals := make([]domain.Entity, 0, len(state.Entities))
	for _, e := range state.Entities {
		if e.ID == id {
			continue
		}
		locals = append(locals, ToLocal(observer, e))
	}

	visibleIDs, endpoints := ComputeVisibleEntities(observer, locals, v)
	visible := make([]domain.Entity, 0, len(visibleIDs))
	for _, e := range locals {
		if visibleIDs[e.ID] {
			visible = append(visible, e)
		}
	}

	p := Perception{
		Observer:             id,
		VisibleEntities:      visible,
		InteractableEntities: InteractableEntities(observer, locals, v.InteractionArea),
		MaxMoveDistance:      MaxMoveDistance(observer, locals),
		VisibilityEndpoints:  endpoints,
	}

	logger.Component("perception").WithFields(logrus.Fields{
		"hiveling":     id,
		"visible":      len(p.VisibleEntities),
		"interactable": len(p.InteractableEntities),
		"max_move":     p.MaxMoveDistance,
	}).Debug("Perception computed")

	return p, nil
}
