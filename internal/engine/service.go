package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hivelings-server/internal/domain"
	"hivelings-server/internal/engine/handlers"
	"hivelings-server/internal/engine/handlers/admin"
	"hivelings-server/internal/infrastructure/storage"
	"hivelings-server/internal/network"
	"hivelings-server/internal/systems"
	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
)

// Service крутит симуляцию: тики, запись реплея, снапшоты, история, рассылка.
// Снаружи видно только состояние ЗАВЕРШЕННОГО тика.
type Service struct {
	cfg  Config
	mind Mind
	opts StepOptions
	Hub  *network.Broadcaster

	replays *storage.ReplayService
	history *storage.History
	session *domain.ReplaySession // nil - запись остановлена

	// stepMu упорядочивает тики и админские команды
	stepMu sync.Mutex

	mu        sync.RWMutex
	state     *domain.SimulationState
	lastOrder []domain.EntityID

	log *logrus.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithReplays включает запись реплея.
func WithReplays(r *storage.ReplayService) Option {
	return func(s *Service) { s.replays = r }
}

// WithHistory включает журнал тиков в SQLite.
func WithHistory(h *storage.History) Option {
	return func(s *Service) { s.history = h }
}

func NewService(cfg Config, state *domain.SimulationState, mind Mind, opts ...Option) (*Service, error) {
	initial, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode initial state: %w", err)
	}

	s := &Service{
		cfg:   cfg,
		mind:  mind,
		opts:  cfg.StepOptions(),
		Hub:   network.NewBroadcaster(),
		state: state.Clone(),
		session: &domain.ReplaySession{
			Scenario:     cfg.Scenario,
			Timestamp:    time.Now().Unix(),
			InitialState: initial,
			FinalTick:    state.Tick,
			FinalDigest:  state.Digest(),
		},
		log: logger.Component("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// --- GAME LOOP ---

// Run крутит тики до ctx.Done() или до cfg.Ticks завершенных тиков.
// Сбой разума останавливает прогон: состояние остается на последнем целом тике.
func (s *Service) Run(ctx context.Context) error {
	s.log.WithFields(logrus.Fields{
		"ticks":    s.cfg.Ticks,
		"interval": s.cfg.TickInterval,
	}).Info("Simulation loop started")

	var ticker *time.Ticker
	if s.cfg.TickInterval > 0 {
		ticker = time.NewTicker(s.cfg.TickInterval)
		defer ticker.Stop()
	}

	for done := 0; s.cfg.Ticks == 0 || done < s.cfg.Ticks; done++ {
		if _, err := s.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}
	}

	s.log.WithField("tick", s.State().Tick).Info("Simulation loop finished")
	return nil
}

// Tick выполняет один тик и публикует его итог.
func (s *Service) Tick(ctx context.Context) (TickReport, error) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	s.mu.RLock()
	cur := s.state
	s.mu.RUnlock()

	next, report, err := Step(ctx, cur, s.mind, s.opts)
	if err != nil {
		s.log.WithError(err).WithField("tick", report.Tick).Error("Tick failed, state kept")
		return report, err
	}

	s.mu.Lock()
	s.state = next
	s.lastOrder = report.Order
	s.mu.Unlock()

	digest := next.Digest()
	if s.session != nil {
		s.session.Decisions = append(s.session.Decisions, report.Outputs...)
		s.session.FinalTick = next.Tick
		s.session.FinalDigest = digest
	}

	s.record(ctx, next, digest)
	logTick(next, report)
	s.Hub.Broadcast(tickUpdate(next, report.Logs))
	return report, nil
}

// record пишет историю и снапшоты. Ошибки хранилища не останавливают симуляцию.
func (s *Service) record(ctx context.Context, state *domain.SimulationState, digest string) {
	if s.history != nil {
		row := storage.TickRow{
			Tick:      state.Tick,
			Score:     state.Score,
			Hivelings: state.Count(domain.EntityTypeHiveling),
			Food:      state.Count(domain.EntityTypeFood),
			Trails:    state.Count(domain.EntityTypeTrail),
			Digest:    digest,
		}
		if err := s.history.RecordTick(ctx, row); err != nil {
			s.log.WithError(err).Error("Failed to record tick history")
		}
	}

	every := s.cfg.Storage.SnapshotEveryTicks
	if every <= 0 || s.cfg.Storage.SnapshotDir == "" || state.Tick%every != 0 {
		return
	}
	path := storage.SnapshotPath(s.cfg.Storage.SnapshotDir, state.Tick)
	if err := storage.WriteSnapshot(path, state); err != nil {
		s.log.WithError(err).Error("Failed to write snapshot")
		return
	}
	if s.history != nil {
		if err := s.history.RecordSnapshot(ctx, state.Tick, path); err != nil {
			s.log.WithError(err).Error("Failed to index snapshot")
		}
	}
	s.log.WithFields(logrus.Fields{"tick": state.Tick, "path": path}).Info("Snapshot written")
}

func tickUpdate(state *domain.SimulationState, logs []api.LogEntry) api.TickUpdate {
	return api.TickUpdate{
		Type:     api.MsgTick,
		Tick:     state.Tick,
		Score:    state.Score,
		Entities: WorldView(state),
		Logs:     logs,
	}
}

// --- ЧТЕНИЕ (для сервера) ---

// State возвращает копию последнего завершенного состояния.
func (s *Service) State() *domain.SimulationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Current - текущее состояние в формате потока наблюдателя (для только что подключившихся).
func (s *Service) Current() api.TickUpdate {
	return tickUpdate(s.State(), nil)
}

// LastOrder - порядок ходов последнего тика.
func (s *Service) LastOrder() []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DebugDump(s.state, s.lastOrder)
}

// Perceive считает восприятие хивлинга на последнем завершенном состоянии.
func (s *Service) Perceive(id domain.EntityID) (systems.Perception, error) {
	return systems.Perceive(s.State(), id, s.opts.Vision)
}

// Admin применяет админскую команду между тиками.
// Реплей после этого не пишется: мир больше не следует из записанных ответов.
func (s *Service) Admin(command string, payload json.RawMessage) (handlers.Result, error) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	next := s.State()
	res, err := admin.Dispatch(handlers.Context{State: next}, command, payload)
	if err != nil {
		return res, err
	}
	next.AddScore(res.ScoreDelta)
	if err := next.Validate(); err != nil {
		return handlers.Result{}, fmt.Errorf("admin %s: %w", command, err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	if s.session != nil {
		s.log.Warn("Replay recording stopped: state changed by admin command")
		s.session = nil
	}
	s.log.WithField("command", command).Info(res.Msg)
	s.Hub.Broadcast(tickUpdate(next, []api.LogEntry{{Tick: next.Tick, Text: res.Msg, Type: res.MsgType}}))
	return res, nil
}

// Session возвращает записанную сессию (nil, если запись остановлена).
func (s *Service) Session() *domain.ReplaySession {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	if s.session == nil {
		return nil
	}
	out := *s.session
	out.Decisions = append([]domain.ReplayDecision(nil), s.session.Decisions...)
	return &out
}

// Close сохраняет реплей, закрывает историю и отключает наблюдателей.
func (s *Service) Close() error {
	var errs []error

	if session := s.Session(); s.replays != nil && session != nil && len(session.Decisions) > 0 {
		path, err := s.replays.Save(session)
		if err != nil {
			errs = append(errs, fmt.Errorf("save replay: %w", err))
		} else {
			s.log.WithFields(logrus.Fields{"path": path, "ticks": session.FinalTick}).Info("Replay saved")
		}
	}
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.Hub.Close()
	return errors.Join(errs...)
}
