package domain

import (
	"fmt"
	"strings"
)

// EntityType - тег варианта сущности.
type EntityType string

var entityTypes = map[string]EntityType{
	string(EntityTypeHiveling):     EntityTypeHiveling,
	string(EntityTypeTrail):        EntityTypeTrail,
	string(EntityTypeFood):         EntityTypeFood,
	string(EntityTypeObstacle):     EntityTypeObstacle,
	string(EntityTypeHiveEntrance): EntityTypeHiveEntrance,
}

// ParseEntityType конвертирует строку в EntityType.
func ParseEntityType(s string) (EntityType, error) {
	if t, ok := entityTypes[strings.ToUpper(s)]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// IsOpaque: препятствия и хивлинги закрывают обзор и преграждают путь.
func (t EntityType) IsOpaque() bool {
	return t == EntityTypeObstacle || t == EntityTypeHiveling
}

// --- КОМПОНЕНТЫ ---

// HivelingComponent - изменяемое состояние агента.
type HivelingComponent struct {
	Orientation float64 `json:"orientation"` // градусы, [0, 360)
	HasFood     bool    `json:"hasFood"`
	Memory      string  `json:"memory"`
	Show        string  `json:"show,omitempty"` // только для отображения
}

// TrailComponent - след, оставленный хивлингом при перемещении.
type TrailComponent struct {
	HivelingID  EntityID `json:"hivelingId"` // обратная ссылка, не владение
	Orientation float64  `json:"orientation"`
	Lifetime    int      `json:"lifetime"`
}

// ObstacleComponent - косметика препятствия.
type ObstacleComponent struct {
	Style string `json:"style,omitempty"`
}

// --- СУЩНОСТЬ ---

type Entity struct {
	ID     EntityID   `json:"identifier"`
	Type   EntityType `json:"type"`
	Pos    Position   `json:"position"`
	Radius float64    `json:"radius"`
	ZIndex int        `json:"zIndex"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Hiveling *HivelingComponent `json:"hiveling,omitempty"`
	Trail    *TrailComponent    `json:"trail,omitempty"`
	Obstacle *ObstacleComponent `json:"obstacle,omitempty"`
}

// Clone делает глубокую копию сущности вместе с компонентами.
func (e Entity) Clone() Entity {
	out := e
	if e.Hiveling != nil {
		h := *e.Hiveling
		out.Hiveling = &h
	}
	if e.Trail != nil {
		tr := *e.Trail
		out.Trail = &tr
	}
	if e.Obstacle != nil {
		o := *e.Obstacle
		out.Obstacle = &o
	}
	return out
}

// Validate проверяет соответствие компонентов типу.
func (e Entity) Validate() error {
	if e.Radius < 0 {
		return fmt.Errorf("entity %s: negative radius %v", e.ID, e.Radius)
	}
	switch e.Type {
	case EntityTypeHiveling:
		if e.Hiveling == nil {
			return fmt.Errorf("entity %s: hiveling without hiveling component", e.ID)
		}
	case EntityTypeTrail:
		if e.Trail == nil {
			return fmt.Errorf("entity %s: trail without trail component", e.ID)
		}
	case EntityTypeFood, EntityTypeObstacle, EntityTypeHiveEntrance:
	default:
		return fmt.Errorf("entity %s: unknown type %q", e.ID, e.Type)
	}
	return nil
}

// --- КОНСТРУКТОРЫ (ID и ZIndex назначает SimulationState.Insert) ---

func NewHiveling(pos Position, orientation float64, hasFood bool) Entity {
	return Entity{
		Type:   EntityTypeHiveling,
		Pos:    pos,
		Radius: DefaultRadius,
		Hiveling: &HivelingComponent{
			Orientation: NormalizeDegrees(orientation),
			HasFood:     hasFood,
		},
	}
}

func NewTrail(owner EntityID, pos Position, orientation float64) Entity {
	return Entity{
		Type:   EntityTypeTrail,
		Pos:    pos,
		Radius: TrailRadius,
		Trail: &TrailComponent{
			HivelingID:  owner,
			Orientation: NormalizeDegrees(orientation),
			Lifetime:    TrailLifetime,
		},
	}
}

func NewFood(pos Position) Entity {
	return Entity{Type: EntityTypeFood, Pos: pos, Radius: DefaultRadius}
}

func NewObstacle(pos Position, style string) Entity {
	return Entity{
		Type:     EntityTypeObstacle,
		Pos:      pos,
		Radius:   DefaultRadius,
		Obstacle: &ObstacleComponent{Style: style},
	}
}

func NewHiveEntrance(pos Position) Entity {
	return Entity{Type: EntityTypeHiveEntrance, Pos: pos, Radius: DefaultRadius}
}

// TruncateMemory обрезает память до MemoryCap рун. Превышение - не ошибка.
// Каждый невалидный байт UTF-8 заменяется на U+FFFD, как это делает encoding/json,
// поэтому память в состоянии совпадает с тем, что переживет снапшот.
func TruncateMemory(memory string) string {
	runes := []rune(memory)
	if len(runes) > MemoryCap {
		runes = runes[:MemoryCap]
	}
	return string(runes)
}
