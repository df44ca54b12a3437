package engine

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"hivelings-server/internal/domain"
	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
)

// newLogEntry превращает ход хивлинга в запись лога тика.
func newLogEntry(tick int, rec turnRecord) api.LogEntry {
	decision := rec.Output.Decision.Type
	if decision == "" {
		decision = "INVALID"
	}
	text := rec.Result.Msg
	if text == "" {
		text = fmt.Sprintf("Хивлинг %s: %s", rec.HivelingID, decision)
	}
	return api.LogEntry{
		Tick:       tick,
		HivelingID: int64(rec.HivelingID),
		Decision:   decision,
		ScoreDelta: rec.Result.ScoreDelta,
		Text:       text,
		Type:       rec.Result.MsgType,
	}
}

// newReplayDecision сохраняет ответ разума в виде, пригодном для реплея.
func newReplayDecision(tick int, rec turnRecord) (domain.ReplayDecision, error) {
	raw, err := json.Marshal(rec.Output)
	if err != nil {
		return domain.ReplayDecision{}, fmt.Errorf("encode output of %s: %w", rec.HivelingID, err)
	}
	return domain.ReplayDecision{Tick: tick, HivelingID: rec.HivelingID, Output: raw}, nil
}

// logTick пишет итог тика в общий лог.
func logTick(state *domain.SimulationState, report TickReport) {
	delivered := 0
	for _, e := range report.Logs {
		if e.ScoreDelta == domain.ScoreFoodDelivered {
			delivered++
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"tick":      state.Tick,
		"score":     state.Score,
		"delivered": delivered,
		"food":      state.Count(domain.EntityTypeFood),
		"trails":    state.Count(domain.EntityTypeTrail),
	}).Info("Tick completed")
}
