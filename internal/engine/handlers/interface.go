package handlers

import (
	"encoding/json"
	"errors"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/systems"
)

// ErrInvalidDecision - решение неправильной формы. Это вина агента:
// резолвер превращает такую ошибку в штраф, а не останавливает тик.
var ErrInvalidDecision = errors.New("invalid decision")

// Типы записей лога
const (
	MsgInfo    = "INFO"
	MsgPenalty = "PENALTY"
	MsgAdmin   = "ADMIN"
)

// Context передает хендлеру состояние мира.
// State мутируется хендлером напрямую; Actor - снимок хивлинга до решения.
type Context struct {
	State      *domain.SimulationState
	Actor      domain.Entity
	Perception systems.Perception
}

// Result - возвращает результат выполнения решения.
// Хендлер НЕ меняет счет сам: резолвер применяет ScoreDelta.
type Result struct {
	Msg        string // Текст лога
	MsgType    string // INFO, PENALTY, ADMIN
	ScoreDelta int
}

// HandlerFunc - это контракт для любого решения (MOVE, TURN, etc).
// payload - JSON решения целиком ({"type":"MOVE","distance":0.5}).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{MsgType: MsgInfo}
}

// Penalty - штраф с пояснением.
func Penalty(delta int, msg string) Result {
	return Result{Msg: msg, MsgType: MsgPenalty, ScoreDelta: delta}
}
