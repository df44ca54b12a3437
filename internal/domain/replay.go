package domain

import "encoding/json"

// ReplayDecision - запись одного ответа разума
type ReplayDecision struct {
	Tick       int             `json:"tick"`
	HivelingID EntityID        `json:"hivelingId"` // Чей ход
	Output     json.RawMessage `json:"output"`     // Что ответил разум (api.Output)
}

// ReplaySession - полная запись прогона
type ReplaySession struct {
	Scenario     string           `json:"scenario"`
	Timestamp    int64            `json:"timestamp"`
	InitialState json.RawMessage  `json:"initialState,omitempty"`
	Decisions    []ReplayDecision `json:"decisions"`
	FinalTick    int              `json:"finalTick"`
	FinalDigest  string           `json:"finalDigest"`
}
