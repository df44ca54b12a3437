package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hivelings-server/internal/domain"
)

const (
	MagicHeader string = `HVRP` // 4 байта
	Version1    uint32 = 1
	Extension          = ".hvrp"
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic           [4]byte // 4 байта
	Version         uint32  // 4 байта
	Timestamp       int64   // 8 байт
	FinalTick       int32   // 4 байта
	DecisionCount   int32   // 4 байта
	InitialStateLen uint32  // 4 байта
	ScenarioLen     uint8   // 1 байт
	DigestLen       uint8   // 1 байт
}

// DecisionHeader - заголовок каждой записи ответа разума.
type DecisionHeader struct {
	Tick       int32  // 4
	HivelingID int64  // 8
	OutputLen  uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	_ = os.MkdirAll(dir, 0o755)
	return &ReplayService{SaveDir: dir}
}

// Save пишет сессию в новый файл и возвращает его путь.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d%s", strings.ToLower(session.Scenario), session.Timestamp, Extension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := writeBinary(bw, session); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return path, f.Sync()
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	scenario := []byte(s.Scenario)
	digest := []byte(s.FinalDigest)
	if len(scenario) > 255 {
		return fmt.Errorf("scenario name too long: %d", len(scenario))
	}
	if len(digest) > 255 {
		return fmt.Errorf("digest too long: %d", len(digest))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:         Version1,
		Timestamp:       s.Timestamp,
		FinalTick:       int32(s.FinalTick),
		DecisionCount:   int32(len(s.Decisions)),
		InitialStateLen: uint32(len(s.InitialState)),
		ScenarioLen:     uint8(len(scenario)),
		DigestLen:       uint8(len(digest)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Динамическая часть заголовка: сценарий, начальное состояние, итоговый дайджест
	for _, chunk := range [][]byte{scenario, s.InitialState, digest} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}

	// 3. Пишем ответы разума
	for _, d := range s.Decisions {
		outputLen := len(d.Output)
		if outputLen > 65535 {
			return fmt.Errorf("output too long: %d", outputLen)
		}

		dh := DecisionHeader{
			Tick:       int32(d.Tick),
			HivelingID: int64(d.HivelingID),
			OutputLen:  uint16(outputLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &dh); err != nil {
			return err
		}
		if _, err := w.Write(d.Output); err != nil {
			return err
		}
	}

	return nil
}
