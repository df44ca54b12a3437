package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"hivelings-server/internal/domain"
)

// ErrBadReplay - файл не является реплеем или поврежден.
var ErrBadReplay = errors.New("bad replay file")

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadReplay(path)
}

// LoadReplay читает реплей по пути.
func LoadReplay(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadReplay, err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrBadReplay)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: unsupported version: %d (expected %d)", ErrBadReplay, header.Version, Version1)
	}
	if header.DecisionCount < 0 {
		return nil, fmt.Errorf("%w: negative decision count", ErrBadReplay)
	}

	scenario := make([]byte, header.ScenarioLen)
	initial := make([]byte, header.InitialStateLen)
	digest := make([]byte, header.DigestLen)
	for _, chunk := range [][]byte{scenario, initial, digest} {
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadReplay, err)
		}
	}

	session := &domain.ReplaySession{
		Scenario:     string(scenario),
		Timestamp:    header.Timestamp,
		InitialState: json.RawMessage(initial),
		Decisions:    make([]domain.ReplayDecision, header.DecisionCount),
		FinalTick:    int(header.FinalTick),
		FinalDigest:  string(digest),
	}

	// 2. Читаем ответы разума
	for i := range session.Decisions {
		var dh DecisionHeader
		if err := binary.Read(r, binary.LittleEndian, &dh); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrBadReplay, i, err)
		}

		output := make([]byte, dh.OutputLen)
		if _, err := io.ReadFull(r, output); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrBadReplay, i, err)
		}

		session.Decisions[i] = domain.ReplayDecision{
			Tick:       int(dh.Tick),
			HivelingID: domain.EntityID(dh.HivelingID),
			Output:     output,
		}
	}

	return session, nil
}

// InitialStateOf разбирает начальное состояние сессии.
func InitialStateOf(session *domain.ReplaySession) (*domain.SimulationState, error) {
	if len(session.InitialState) == 0 {
		return nil, fmt.Errorf("%w: no initial state", ErrBadReplay)
	}
	var state domain.SimulationState
	if err := json.Unmarshal(session.InitialState, &state); err != nil {
		return nil, fmt.Errorf("%w: initial state: %v", ErrBadReplay, err)
	}
	return &state, nil
}
