package api

import (
	"encoding/json"
)

// --- ДВИЖОК -> РАЗУМ ---

// Position - координаты в локальной системе хивлинга (или мировой - в потоке наблюдателя).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity это DTO воспринимаемой сущности.
// Наружу отдаются только поля, уместные для типа: у хивлинга - несет ли он еду,
// у следа - возраст и направление. Память и ID скрыты (ID - только в debug-режиме).
type Entity struct {
	Type     string   `json:"type"` // HIVELING, TRAIL, FOOD, OBSTACLE, HIVE_ENTRANCE
	Position Position `json:"position"`
	Radius   float64  `json:"radius"`
	ZIndex   int      `json:"zIndex"`

	Identifier  *int64   `json:"identifier,omitempty"`
	HasFood     *bool    `json:"hasFood,omitempty"`
	Orientation *float64 `json:"orientation,omitempty"`
	Lifetime    *int     `json:"lifetime,omitempty"`
	Style       string   `json:"style,omitempty"`
	Show        string   `json:"show,omitempty"` // только в потоке наблюдателя
}

// Input - то, что получает разум при каждом вызове.
type Input struct {
	MaxMoveDistance      float64  `json:"maxMoveDistance"`
	InteractableEntities []Entity `json:"interactableEntities"`
	VisibleEntities      []Entity `json:"visibleEntities"`
	HasFood              bool     `json:"hasFood"`
	Memory               *string  `json:"memory"`
	RandomSeed           string   `json:"randomSeed"`
}

// --- РАЗУМ -> ДВИЖОК ---

// Decision - решение разума. Degrees нужен для TURN, Distance - для MOVE.
type Decision struct {
	Type     string   `json:"type"`
	Degrees  *float64 `json:"degrees,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
}

// Output - ответ разума.
type Output struct {
	Decision Decision `json:"decision"`
	Memory   string   `json:"memory"`
	Show     *string  `json:"show,omitempty"`
}

func Wait() Decision   { return Decision{Type: "WAIT"} }
func Pickup() Decision { return Decision{Type: "PICKUP"} }
func Drop() Decision   { return Decision{Type: "DROP"} }

func Turn(degrees float64) Decision {
	return Decision{Type: "TURN", Degrees: &degrees}
}

func Move(distance float64) Decision {
	return Decision{Type: "MOVE", Distance: &distance}
}

// --- ТРАНСПОРТ (WebSocket) ---

const (
	MsgDecide   = "DECIDE"
	MsgDecision = "DECISION"
	MsgError    = "ERROR"
	MsgTick     = "TICK"
)

// MindRequest - запрос движка к удаленному разуму.
type MindRequest struct {
	Type      string `json:"type"` // DECIDE
	RequestID uint64 `json:"requestId"`
	Input     Input  `json:"input"`
}

// MindResponse - ответ удаленного разума. Output хранится сырым,
// чтобы его можно было проверить схемой до разбора.
type MindResponse struct {
	Type      string          `json:"type"` // DECISION или ERROR
	RequestID uint64          `json:"requestId"`
	Output    json.RawMessage `json:"output,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// --- СЕРВЕР -> НАБЛЮДАТЕЛЬ ---

// TickUpdate рассылается наблюдателям после каждого ЗАВЕРШЕННОГО тика.
type TickUpdate struct {
	Type     string     `json:"type"` // TICK
	Tick     int        `json:"tick"`
	Score    int        `json:"score"`
	Entities []Entity   `json:"entities"` // мировые координаты, с ID
	Logs     []LogEntry `json:"logs,omitempty"`
}

// LogEntry представляет одну запись в логе тика.
type LogEntry struct {
	Tick       int    `json:"tick"`
	HivelingID int64  `json:"hivelingId"`
	Decision   string `json:"decision"`
	ScoreDelta int    `json:"scoreDelta"`
	Text       string `json:"text"`
	Type       string `json:"type"` // INFO, PENALTY
}
