// Package rng реализует детерминированный аддитивный генератор Фибоначчи с запаздыванием.
// Состояние генератора - обычные сериализуемые данные, поэтому его можно
// сохранить в снапшот и продолжить последовательность в другом процессе.
package rng

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"
)

// DefaultSeed дополняет пользовательское зерно до длины K.
const DefaultSeed = "!\"j%BfBWsq&<c$_4)m78%qZw,y`x\\G79sJA;8\"}|~zUETg|5v?^%0-/"

// ErrMalformedState возвращается при восстановлении из некорректного состояния.
var ErrMalformedState = errors.New("rng: malformed state")

// Config - параметры генератора.
type Config struct {
	J           int    `json:"j"`
	K           int    `json:"k"`
	M           uint64 `json:"m"`
	DefaultSeed string `json:"defaultSeed"`
	Discard     int    `json:"discard"`
}

// DefaultConfig: j=24, k=55, m=2^32, 5000 холостых шагов после посева.
func DefaultConfig() Config {
	return Config{
		J:           24,
		K:           55,
		M:           1 << 32,
		DefaultSeed: DefaultSeed,
		Discard:     5000,
	}
}

// State - сериализуемый снимок генератора. Sequence[0] - последнее выданное значение.
type State struct {
	Config   Config   `json:"config"`
	Sequence []uint64 `json:"sequence"`
}

// Rng - дескриптор генератора. Не потокобезопасен: владелец один, как и у состояния мира.
type Rng struct {
	cfg Config
	seq []uint64
}

// Seed создает генератор со стандартными параметрами.
func Seed(seed string) *Rng {
	return SeedWith(DefaultConfig(), seed)
}

// SeedInt - посев числом (используется его десятичное представление).
func SeedInt(seed int64) *Rng {
	return Seed(strconv.FormatInt(seed, 10))
}

// SeedWith создает генератор с явными параметрами.
// Начальное состояние - первые K UTF-16 кодов строки seed+DefaultSeed.
func SeedWith(cfg Config, seed string) *Rng {
	units := utf16.Encode([]rune(seed + cfg.DefaultSeed))
	if len(units) == 0 {
		units = []uint16{0}
	}

	seq := make([]uint64, cfg.K)
	for i := range seq {
		// Короткий материал повторяется по кругу (возможно только при нестандартном DefaultSeed)
		seq[i] = uint64(units[i%len(units)]) % cfg.M
	}

	r := &Rng{cfg: cfg, seq: seq}
	for i := 0; i < cfg.Discard; i++ {
		r.Next()
	}
	return r
}

// Restore восстанавливает генератор из снимка.
func Restore(s State) (*Rng, error) {
	cfg := s.Config
	if cfg.J <= 0 || cfg.K <= cfg.J || cfg.M == 0 {
		return nil, fmt.Errorf("%w: invalid lags j=%d k=%d m=%d", ErrMalformedState, cfg.J, cfg.K, cfg.M)
	}
	if len(s.Sequence) != cfg.K {
		return nil, fmt.Errorf("%w: sequence length %d, expected %d", ErrMalformedState, len(s.Sequence), cfg.K)
	}
	for i, v := range s.Sequence {
		if v >= cfg.M {
			return nil, fmt.Errorf("%w: value %d at %d exceeds modulus", ErrMalformedState, v, i)
		}
	}

	seq := make([]uint64, len(s.Sequence))
	copy(seq, s.Sequence)
	return &Rng{cfg: cfg, seq: seq}, nil
}

// Next выдает следующее значение в [0, M).
func (r *Rng) Next() uint64 {
	next := (r.seq[r.cfg.J-1] + r.seq[r.cfg.K-1]) % r.cfg.M
	copy(r.seq[1:], r.seq[:len(r.seq)-1])
	r.seq[0] = next
	return next
}

// State возвращает независимую копию текущего состояния.
func (r *Rng) State() State {
	seq := make([]uint64, len(r.seq))
	copy(seq, r.seq)
	return State{Config: r.cfg, Sequence: seq}
}

// Modulus возвращает M.
func (r *Rng) Modulus() uint64 {
	return r.cfg.M
}
