package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/logging"
	"github.com/renato0307/clawusage/internal/ports"
)

const closeWriteWait = time.Second

// errSessionClosed is returned to callers waiting when Close is called
var errSessionClosed = errors.New("session closed")

// response is a decoded response frame delivered to a waiting caller
type response struct {
	err     *RPCError
	ok      bool
	payload json.RawMessage
}

// Session is an authenticated gateway connection.
// A single reader goroutine dispatches responses to callers by request id.
type Session struct {
	closeOnce      sync.Once
	closing        atomic.Bool
	conn           *websocket.Conn
	done           chan struct{}
	group          errgroup.Group
	pending        map[string]chan response
	pendingMu      sync.Mutex
	readErr        error // Set before done is closed
	requestTimeout time.Duration
	writeMu        sync.Mutex
}

// Verify interface compliance at compile time
var _ ports.GatewaySession = (*Session)(nil)

func newSession(conn *websocket.Conn, requestTimeout time.Duration) *Session {
	s := &Session{
		conn:           conn,
		done:           make(chan struct{}),
		pending:        make(map[string]chan response),
		requestTimeout: requestTimeout,
	}
	s.group.Go(s.readLoop)
	return s
}

// readLoop runs until the connection fails or is closed
func (s *Session) readLoop() error {
	defer close(s.done)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if s.closing.Load() {
				s.readErr = errSessionClosed
				return nil
			}
			logging.Logger.Debug("Gateway read failed", "error", err)
			s.readErr = err
			return err
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			logging.Logger.Warn("Ignoring undecodable gateway frame", "error", err, "size", len(data))
			continue
		}

		switch frame.Type {
		case frameResponse:
			s.deliver(frame)
		case frameEvent:
			logging.Logger.Debug("Gateway event", "event", frame.Event)
		default:
			logging.Logger.Debug("Ignoring gateway frame", "type", frame.Type)
		}
	}
}

func (s *Session) deliver(frame inboundFrame) {
	s.pendingMu.Lock()
	ch, ok := s.pending[frame.ID]
	delete(s.pending, frame.ID)
	s.pendingMu.Unlock()

	if !ok {
		logging.Logger.Debug("Response for unknown request", "id", frame.ID)
		return
	}
	ch <- response{err: frame.Error, ok: frame.OK, payload: frame.Payload}
}

// call sends a request and blocks until its response, ctx expiry or connection loss
func (s *Session) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := uuid.NewString()
	data, err := json.Marshal(requestFrame{ID: id, Method: method, Params: params, Type: frameRequest})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	ch := make(chan response, 1)
	s.pendingMu.Lock()
	s.pending[id] = ch
	s.pendingMu.Unlock()
	defer func() {
		s.pendingMu.Lock()
		delete(s.pending, id)
		s.pendingMu.Unlock()
	}()

	s.writeMu.Lock()
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetWriteDeadline(deadline)
	}
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.conn.SetWriteDeadline(time.Time{})
	s.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}

	logging.Logger.Debug("Gateway request sent", "method", method, "id", id)

	select {
	case res := <-ch:
		if !res.ok {
			if res.err == nil {
				return nil, &RPCError{Message: "request failed without error detail"}
			}
			return nil, res.err
		}
		return res.payload, nil
	case <-s.done:
		return nil, fmt.Errorf("gateway connection closed: %w", s.readErr)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DailyUsage implements GatewaySession.DailyUsage
func (s *Session) DailyUsage(ctx context.Context, days int) ([]domain.UsageRecord, error) {
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	payload, err := s.call(ctx, methodUsageCost, usageParams{Days: days})
	if err != nil {
		return nil, requestError("fetch usage", err, s.requestTimeout)
	}

	records, err := decodeDailyUsage(payload)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("Usage received", "requested_days", days, "returned_days", len(records))
	return records, nil
}

// requestError maps a failed post-connect request onto the error taxonomy
func requestError(op string, err error, timeout time.Duration) error {
	var rpcErr *RPCError
	switch {
	case errors.As(err, &rpcErr):
		return domain.NewProtocolError(op, "gateway returned an error", rpcErr)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewTimeoutError(op, fmt.Sprintf("no response within %s", timeout), err).
			WithSuggestion("Raise --timeout if the gateway is slow to aggregate usage")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s interrupted: %w", op, err)
	default:
		return domain.NewConnectionError(op, "lost connection to gateway", err)
	}
}

// Close implements GatewaySession.Close. It is safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closing.Store(true)

		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeWriteWait))
		s.writeMu.Unlock()

		err = s.conn.Close()
		s.group.Wait()
		logging.Logger.Debug("Gateway session closed")
	})
	return err
}
