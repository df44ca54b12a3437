package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"hivelings-server/internal/systems"
	"hivelings-server/pkg/scenario"
)

// ErrInvalidConfig - конфигурация не позволяет запустить прогон.
var ErrInvalidConfig = errors.New("invalid config")

// Виды разума
const (
	MindDemo   = "demo"
	MindRemote = "remote"
)

// Config хранит параметры запуска движка
type Config struct {
	Scenario string `yaml:"scenario"`
	// Seed - если задан, заменяет зерно генератора сценария.
	Seed             string        `yaml:"seed"`
	Ticks            int           `yaml:"ticks"` // 0 - без ограничения
	TickInterval     time.Duration `yaml:"tickInterval"`
	DebugIdentifiers bool          `yaml:"debugIdentifiers"`

	Mind    MindConfig     `yaml:"mind"`
	Storage StorageConfig  `yaml:"storage"`
	Server  ServerConfig   `yaml:"server"`
	Vision  systems.Vision `yaml:"vision"`
}

type MindConfig struct {
	Kind    string        `yaml:"kind"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	ReplayDir          string `yaml:"replayDir"`
	SnapshotDir        string `yaml:"snapshotDir"`
	SnapshotEveryTicks int    `yaml:"snapshotEveryTicks"`
	HistoryPath        string `yaml:"historyPath"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig - конфиг по умолчанию: базовый сценарий и демо-разум.
func DefaultConfig() Config {
	return Config{
		Scenario:     scenario.NameBase,
		TickInterval: 200 * time.Millisecond,
		Mind: MindConfig{
			Kind:    MindDemo,
			Timeout: 2 * time.Second,
		},
		Storage: StorageConfig{
			ReplayDir:          "./replays",
			SnapshotDir:        "./snapshots",
			SnapshotEveryTicks: 100,
		},
		Server: ServerConfig{Addr: ":8080"},
		Vision: systems.DefaultVision(),
	}
}

// LoadConfig читает YAML поверх значений по умолчанию.
// Пустой путь - только значения по умолчанию.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Mind.Kind {
	case MindDemo:
	case MindRemote:
		if strings.TrimSpace(c.Mind.URL) == "" {
			return fmt.Errorf("%w: remote mind needs a url", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mind kind %q", ErrInvalidConfig, c.Mind.Kind)
	}

	if c.Mind.Timeout < 0 || c.TickInterval < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	if c.Ticks < 0 || c.Storage.SnapshotEveryTicks < 0 {
		return fmt.Errorf("%w: negative tick count", ErrInvalidConfig)
	}

	v := c.Vision
	if v.FieldOfView <= 0 || v.SightDistance <= 0 || v.PeripheralFieldOfView <= 0 || v.PeripheralSightDistance <= 0 {
		return fmt.Errorf("%w: vision values must be positive", ErrInvalidConfig)
	}
	if v.SliverWidth <= 0 {
		return fmt.Errorf("%w: sliverDeg must be positive", ErrInvalidConfig)
	}
	return nil
}

// StepOptions - параметры тика из конфига.
func (c Config) StepOptions() StepOptions {
	return StepOptions{Vision: c.Vision, DebugIdentifiers: c.DebugIdentifiers}
}
