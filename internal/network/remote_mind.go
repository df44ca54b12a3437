package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hivelings-server/pkg/api"
	"hivelings-server/pkg/logger"
)

var (
	// ErrMindTimeout - разум не ответил вовремя.
	ErrMindTimeout = errors.New("mind timeout")
	// ErrMindUnavailable - нет соединения с разумом или оно оборвалось.
	ErrMindUnavailable = errors.New("mind unavailable")
)

const defaultMindTimeout = 2 * time.Second

// RemoteMind - разум на другом конце websocket.
// Вызовы строго последовательны: одно соединение, один запрос в полете.
type RemoteMind struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID uint64
	log    *logrus.Entry
}

func NewRemoteMind(url string, timeout time.Duration) *RemoteMind {
	if timeout <= 0 {
		timeout = defaultMindTimeout
	}
	return &RemoteMind{
		url:     url,
		timeout: timeout,
		dialer:  &websocket.Dialer{HandshakeTimeout: timeout},
		log:     logger.Component("remote_mind").WithField("url", url),
	}
}

// Decide отправляет DECIDE и ждет DECISION с тем же requestId.
// Ответ, не прошедший схему, считается невалидным решением (штраф),
// а не сбоем транспорта: память хивлинга при этом не меняется.
func (m *RemoteMind) Decide(ctx context.Context, in api.Input) (api.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureConn(ctx); err != nil {
		return api.Output{}, err
	}

	// Дедлайн контекста обрабатывает AfterFunc ниже
	deadline := time.Now().Add(m.timeout)

	m.nextID++
	req := api.MindRequest{Type: api.MsgDecide, RequestID: m.nextID, Input: in}

	_ = m.conn.SetWriteDeadline(deadline)
	if err := m.conn.WriteJSON(req); err != nil {
		return api.Output{}, m.fail(err)
	}

	_ = m.conn.SetReadDeadline(deadline)

	// Отмена контекста рвет ожидание через дедлайн чтения
	conn := m.conn
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		var resp api.MindResponse
		if err := m.conn.ReadJSON(&resp); err != nil {
			if ctx.Err() != nil {
				m.drop()
				return api.Output{}, ctx.Err()
			}
			return api.Output{}, m.fail(err)
		}

		// Опоздавший ответ на прошлый запрос
		if resp.RequestID != req.RequestID {
			m.log.WithField("request_id", resp.RequestID).Debug("Stale mind response dropped")
			continue
		}

		if resp.Type == api.MsgError {
			return api.Output{}, fmt.Errorf("%w: %s", ErrMindUnavailable, resp.Error)
		}

		out, err := api.DecodeOutput(resp.Output)
		if err != nil {
			m.log.WithError(err).Warn("Mind output rejected")
			return invalidOutput(in), nil
		}
		return out, nil
	}
}

func invalidOutput(in api.Input) api.Output {
	out := api.Output{}
	if in.Memory != nil {
		out.Memory = *in.Memory
	}
	return out
}

func (m *RemoteMind) ensureConn(ctx context.Context) error {
	if m.conn != nil {
		return nil
	}
	dctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	conn, _, err := m.dialer.DialContext(dctx, m.url, nil)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrMindUnavailable, m.url, err)
	}
	m.conn = conn
	m.log.Info("Connected to mind")
	return nil
}

// fail закрывает соединение и классифицирует ошибку транспорта.
// Следующий вызов переподключится.
func (m *RemoteMind) fail(err error) error {
	m.drop()
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrMindTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrMindUnavailable, err)
}

func (m *RemoteMind) drop() {
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}

// Close закрывает соединение с разумом.
func (m *RemoteMind) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	_ = m.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	err := m.conn.Close()
	m.conn = nil
	return err
}
