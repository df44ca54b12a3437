package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"hivelings-server/pkg/rng"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrNotHiveling    = errors.New("entity is not a hiveling")
)

// SimulationState - полное состояние симуляции. Только данные, без внешних ссылок,
// поэтому сериализуется в JSON целиком (снапшоты, реплеи).
type SimulationState struct {
	Entities []Entity  `json:"entities"`
	NextID   EntityID  `json:"nextId"`
	Score    int       `json:"score"`
	RngState rng.State `json:"rngState"`
	Tick     int       `json:"tick"` // число завершенных тиков
}

// NewState создает пустой мир с генератором, засеянным seed.
func NewState(seed string) *SimulationState {
	return &SimulationState{
		Entities: make([]Entity, 0),
		RngState: rng.Seed(seed).State(),
	}
}

// Clone делает глубокую копию состояния.
func (s *SimulationState) Clone() *SimulationState {
	out := *s
	out.Entities = make([]Entity, len(s.Entities))
	for i, e := range s.Entities {
		out.Entities[i] = e.Clone()
	}
	out.RngState.Sequence = append([]uint64(nil), s.RngState.Sequence...)
	return &out
}

// Insert добавляет сущность, назначая ей ID и ZIndex.
// Переданные ID и ZIndex игнорируются.
func (s *SimulationState) Insert(e Entity) EntityID {
	e.ID = s.NextID
	s.NextID++
	e.ZIndex = s.ZIndexAt(e.Pos, e.Radius)
	s.Entities = append(s.Entities, e)
	return e.ID
}

// ZIndexAt = 1 + максимальный zIndex среди сущностей, пересекающих круг (pos, radius),
// или 0, если таких нет. exclude - сущности, которые не учитываются (сам перемещаемый объект).
func (s *SimulationState) ZIndexAt(pos Position, radius float64, exclude ...EntityID) int {
	z := -1
	for _, e := range s.Entities {
		if containsID(exclude, e.ID) {
			continue
		}
		if pos.DistanceTo(e.Pos) < e.Radius+radius && e.ZIndex > z {
			z = e.ZIndex
		}
	}
	return z + 1
}

func containsID(ids []EntityID, id EntityID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (s *SimulationState) indexOf(id EntityID) int {
	for i := range s.Entities {
		if s.Entities[i].ID == id {
			return i
		}
	}
	return -1
}

// Entity возвращает копию сущности по ID.
func (s *SimulationState) Entity(id EntityID) (Entity, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Entity{}, false
	}
	return s.Entities[i].Clone(), true
}

// Hivelings возвращает ID всех хивлингов в порядке хранения.
func (s *SimulationState) Hivelings() []EntityID {
	ids := make([]EntityID, 0)
	for _, e := range s.Entities {
		if e.Type == EntityTypeHiveling {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// HivelingUpdate - частичное обновление. nil-поля не меняются.
type HivelingUpdate struct {
	Pos         *Position
	ZIndex      *int
	Orientation *float64
	HasFood     *bool
	Memory      *string
	Show        *string
}

// UpdateHiveling применяет частичное обновление к хивлингу.
func (s *SimulationState) UpdateHiveling(id EntityID, u HivelingUpdate) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrEntityNotFound)
	}
	e := &s.Entities[i]
	if e.Type != EntityTypeHiveling || e.Hiveling == nil {
		return fmt.Errorf("update %s: %w", id, ErrNotHiveling)
	}

	if u.Pos != nil {
		e.Pos = *u.Pos
	}
	if u.ZIndex != nil {
		e.ZIndex = *u.ZIndex
	}
	if u.Orientation != nil {
		e.Hiveling.Orientation = NormalizeDegrees(*u.Orientation)
	}
	if u.HasFood != nil {
		e.Hiveling.HasFood = *u.HasFood
	}
	if u.Memory != nil {
		e.Hiveling.Memory = TruncateMemory(*u.Memory)
	}
	if u.Show != nil {
		e.Hiveling.Show = string([]rune(*u.Show))
	}
	return nil
}

// RemoveEntity удаляет сущность. При удалении хивлинга удаляются и его следы,
// чтобы не оставалось висячих ссылок.
func (s *SimulationState) RemoveEntity(id EntityID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	removed := s.Entities[i]
	s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)

	if removed.Type == EntityTypeHiveling {
		kept := s.Entities[:0]
		for _, e := range s.Entities {
			if e.Trail != nil && e.Trail.HivelingID == id {
				continue
			}
			kept = append(kept, e)
		}
		s.Entities = kept
	}
	return true
}

// AddScore меняет счет. Ограничений нет.
func (s *SimulationState) AddScore(delta int) {
	s.Score += delta
}

// AgeTrails уменьшает lifetime всех следов и удаляет те, у которых он стал < 0.
// Возвращает число удаленных следов.
func (s *SimulationState) AgeTrails() int {
	kept := s.Entities[:0]
	removed := 0
	for _, e := range s.Entities {
		if e.Trail != nil {
			e.Trail.Lifetime--
			if e.Trail.Lifetime < 0 {
				removed++
				continue
			}
		}
		kept = append(kept, e)
	}
	s.Entities = kept
	return removed
}

// Count возвращает число сущностей заданного типа.
func (s *SimulationState) Count(t EntityType) int {
	n := 0
	for _, e := range s.Entities {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Validate проверяет инварианты: уникальность ID, ID < NextID, ссылки следов.
// Используется при загрузке снапшотов и реплеев.
func (s *SimulationState) Validate() error {
	seen := make(map[EntityID]EntityType, len(s.Entities))
	for _, e := range s.Entities {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate entity id %s", e.ID)
		}
		if e.ID >= s.NextID {
			return fmt.Errorf("entity id %s is not below nextId %s", e.ID, s.NextID)
		}
		if err := e.Validate(); err != nil {
			return err
		}
		if e.Hiveling != nil && len([]rune(e.Hiveling.Memory)) > MemoryCap {
			return fmt.Errorf("entity %s: memory exceeds cap", e.ID)
		}
		seen[e.ID] = e.Type
	}
	for _, e := range s.Entities {
		if e.Trail == nil {
			continue
		}
		if seen[e.Trail.HivelingID] != EntityTypeHiveling {
			return fmt.Errorf("trail %s references missing hiveling %s", e.ID, e.Trail.HivelingID)
		}
	}
	if _, err := rng.Restore(s.RngState); err != nil {
		return err
	}
	return nil
}

// Digest - sha256 от JSON-представления состояния. Одинаковые состояния дают одинаковый дайджест.
func (s *SimulationState) Digest() string {
	raw, err := json.Marshal(s)
	if err != nil {
		// Все поля - простые данные, Marshal не падает (кроме NaN в координатах)
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
