package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"hivelings-server/internal/domain"
)

const SnapshotVersion = 1

// SnapshotHeader - первая строка снапшота, читается без разбора состояния.
type SnapshotHeader struct {
	Version int    `json:"version"`
	Tick    int    `json:"tick"`
	Digest  string `json:"digest"`
}

// SnapshotPath - имя файла снапшота для тика.
func SnapshotPath(dir string, tick int) string {
	return filepath.Join(dir, fmt.Sprintf("snapshot_%08d.json.zst", tick))
}

// WriteSnapshot пишет zstd(заголовок JSON + '\n' + состояние JSON).
func WriteSnapshot(path string, state *domain.SimulationState) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, _ := json.Marshal(SnapshotHeader{Version: SnapshotVersion, Tick: state.Tick, Digest: state.Digest()})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(state); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// ReadSnapshot читает снапшот и сверяет дайджест из заголовка.
func ReadSnapshot(path string) (*domain.SimulationState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	var header SnapshotHeader
	if err := json.Unmarshal(line, &header); err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	if header.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", header.Version)
	}

	var state domain.SimulationState
	if err := json.NewDecoder(br).Decode(&state); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if got := state.Digest(); got != header.Digest {
		return nil, fmt.Errorf("snapshot digest mismatch: header %s, state %s", header.Digest, got)
	}
	return &state, nil
}
