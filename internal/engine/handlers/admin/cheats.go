package admin

import (
	"encoding/json"
	"errors"
	"fmt"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
)

// ErrUnknownCommand - нет такой админской команды.
var ErrUnknownCommand = errors.New("unknown admin command")

// Commands возвращает таблицу админских команд. Они работают поверх
// текущего состояния между тиками, ctx.Actor для них не заполнен.
func Commands() map[string]handlers.HandlerFunc {
	return map[string]handlers.HandlerFunc{
		"SPAWN":    handlers.WithPayload(HandleSpawn),
		"TELEPORT": handlers.WithPayload(HandleTeleport),
		"REMOVE":   handlers.WithPayload(HandleRemove),
		"SCORE":    handlers.WithPayload(HandleScore),
	}
}

// Dispatch находит команду по имени и выполняет ее.
func Dispatch(ctx handlers.Context, command string, payload json.RawMessage) (handlers.Result, error) {
	h, ok := Commands()[command]
	if !ok {
		return handlers.Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	return h(ctx, payload)
}

// SpawnPayload: { "entityType": "FOOD", "x": 1, "y": 2, "style": "rocks" }
type SpawnPayload struct {
	EntityType  string  `json:"entityType"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Orientation float64 `json:"orientation"` // только для HIVELING
	Style       string  `json:"style"`       // только для OBSTACLE
}

func (p SpawnPayload) Validate() error {
	t, err := domain.ParseEntityType(p.EntityType)
	if err != nil {
		return err
	}
	if t == domain.EntityTypeTrail {
		return errors.New("trails are created by movement only")
	}
	return nil
}

func HandleSpawn(ctx handlers.Context, p SpawnPayload) (handlers.Result, error) {
	t, _ := domain.ParseEntityType(p.EntityType)
	pos := domain.Position{X: p.X, Y: p.Y}

	var e domain.Entity
	switch t {
	case domain.EntityTypeHiveling:
		e = domain.NewHiveling(pos, p.Orientation, false)
	case domain.EntityTypeFood:
		e = domain.NewFood(pos)
	case domain.EntityTypeObstacle:
		style := p.Style
		if style == "" {
			style = domain.ObstacleStyleRocks
		}
		e = domain.NewObstacle(pos, style)
	case domain.EntityTypeHiveEntrance:
		e = domain.NewHiveEntrance(pos)
	}

	id := ctx.State.Insert(e)
	return handlers.Result{Msg: fmt.Sprintf("Spawned %s %s at (%.2f, %.2f)", t, id, p.X, p.Y), MsgType: handlers.MsgAdmin}, nil
}

// TeleportPayload: { "id": 3, "x": 10, "y": 10 }
type TeleportPayload struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	id := domain.EntityID(p.ID)
	e, ok := ctx.State.Entity(id)
	if !ok {
		return handlers.Result{}, fmt.Errorf("teleport %s: %w", id, domain.ErrEntityNotFound)
	}

	pos := domain.Position{X: p.X, Y: p.Y}
	z := ctx.State.ZIndexAt(pos, e.Radius, id)
	if err := ctx.State.UpdateHiveling(id, domain.HivelingUpdate{Pos: &pos, ZIndex: &z}); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: fmt.Sprintf("Teleported %s to (%.2f, %.2f)", id, p.X, p.Y), MsgType: handlers.MsgAdmin}, nil
}

// RemovePayload: { "id": 3 }
type RemovePayload struct {
	ID int64 `json:"id"`
}

func HandleRemove(ctx handlers.Context, p RemovePayload) (handlers.Result, error) {
	id := domain.EntityID(p.ID)
	if !ctx.State.RemoveEntity(id) {
		return handlers.Result{}, fmt.Errorf("remove %s: %w", id, domain.ErrEntityNotFound)
	}
	return handlers.Result{Msg: fmt.Sprintf("Removed %s", id), MsgType: handlers.MsgAdmin}, nil
}

// ScorePayload: { "delta": 100 }
type ScorePayload struct {
	Delta int `json:"delta"`
}

// HandleScore возвращает дельту в Result, применяет ее вызывающий.
func HandleScore(_ handlers.Context, p ScorePayload) (handlers.Result, error) {
	return handlers.Result{Msg: fmt.Sprintf("Score adjusted by %d", p.Delta), MsgType: handlers.MsgAdmin, ScoreDelta: p.Delta}, nil
}
