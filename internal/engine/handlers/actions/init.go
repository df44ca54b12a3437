package actions

import (
	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
)

// Registry возвращает таблицу хендлеров для всех известных решений.
func Registry() map[domain.DecisionType]handlers.HandlerFunc {
	return map[domain.DecisionType]handlers.HandlerFunc{
		domain.DecisionWait:   handlers.WithEmptyPayload(HandleWait),
		domain.DecisionTurn:   handlers.WithPayload(HandleTurn),
		domain.DecisionMove:   handlers.WithPayload(HandleMove),
		domain.DecisionPickup: handlers.WithEmptyPayload(HandlePickup),
		domain.DecisionDrop:   handlers.WithEmptyPayload(HandleDrop),
	}
}
