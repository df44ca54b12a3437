package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDecision - неизвестный тег решения в реплее или конфигурации.
// Для ответа разума это не ошибка, а штраф.
var ErrUnknownDecision = errors.New("unknown decision")

// DecisionType - внутренний числовой идентификатор решения
type DecisionType uint8

const (
	DecisionUnknown DecisionType = iota
	DecisionWait
	DecisionTurn
	DecisionMove
	DecisionPickup
	DecisionDrop
)

// Маппинг для конвертации JSON -> Domain
var decisionStringToType = map[string]DecisionType{
	"WAIT":   DecisionWait,
	"TURN":   DecisionTurn,
	"MOVE":   DecisionMove,
	"PICKUP": DecisionPickup,
	"DROP":   DecisionDrop,
}

// Маппинг для логов Domain -> String
var decisionTypeToString = map[DecisionType]string{
	DecisionWait:   "WAIT",
	DecisionTurn:   "TURN",
	DecisionMove:   "MOVE",
	DecisionPickup: "PICKUP",
	DecisionDrop:   "DROP",
}

// ParseDecision конвертирует строку из JSON в DecisionType
func ParseDecision(s string) DecisionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := decisionStringToType[upper]; ok {
		return val
	}
	return DecisionUnknown
}

// ParseDecisionStrict - строгий вариант для источников, которым мы доверяем (реплеи).
func ParseDecisionStrict(s string) (DecisionType, error) {
	if d := ParseDecision(s); d != DecisionUnknown {
		return d, nil
	}
	return DecisionUnknown, fmt.Errorf("%w: %q", ErrUnknownDecision, s)
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (d DecisionType) String() string {
	if val, ok := decisionTypeToString[d]; ok {
		return val
	}
	return "UNKNOWN"
}
