package deluge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/quepf/deluge-rpc/internal/rpc"
	"github.com/quepf/deluge-rpc/internal/wire"
)

// ErrSessionClosed is returned for calls issued on (or interrupted by) a
// closed session. The underlying cause, if any, is wrapped.
var ErrSessionClosed = errors.New("session closed")

// Options configures a Session.
type Options struct {
	Addr string
	TLS  wire.DialOptions
	// ClientVersion is reported to the daemon during login.
	ClientVersion string
	Logger        *slog.Logger
}

// Session is an authenticated connection to one daemon. Methods may be
// called from any goroutine.
type Session struct {
	conn          net.Conn
	logger        *slog.Logger
	clientVersion string

	nextID atomic.Int64

	// writeMu serializes outbound frames; the reader goroutine owns reads.
	writeMu sync.Mutex

	mu        sync.Mutex
	pending   map[int64]chan *rpc.Response
	receivers map[*EventReceiver]struct{}
	authLevel AuthLevel
	closeErr  error
	closed    bool

	done chan struct{}
}

// Connect dials the daemon and starts the session's reader.
func Connect(ctx context.Context, opts Options) (*Session, error) {
	conn, err := wire.Dial(ctx, opts.Addr, opts.TLS)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", opts.Addr, err)
	}
	return Attach(conn, opts), nil
}

// Attach runs a session over an established connection. The session takes
// ownership of conn.
func Attach(conn net.Conn, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clientVersion := opts.ClientVersion
	if clientVersion == "" {
		clientVersion = "2.1.1"
	}
	s := &Session{
		conn:          conn,
		logger:        logger,
		clientVersion: clientVersion,
		pending:       make(map[int64]chan *rpc.Response),
		receivers:     make(map[*EventReceiver]struct{}),
		authLevel:     AuthNobody,
		done:          make(chan struct{}),
	}
	go s.readLoop()
	return s
}

// AuthLevel reports the privilege tier granted by the last login.
func (s *Session) AuthLevel() AuthLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authLevel
}

func (s *Session) setAuthLevel(level AuthLevel) {
	s.mu.Lock()
	s.authLevel = level
	s.mu.Unlock()
}

// Call issues one RPC and waits for its correlated response. Remote
// failures are returned normalized: recognized exceptions as their typed
// variants, everything else as the *rpc.RemoteError itself.
func (s *Session) Call(ctx context.Context, method string, args []any, kwargs map[string]any) ([]any, error) {
	id := s.nextID.Add(1)
	ch := make(chan *rpc.Response, 1)

	s.mu.Lock()
	if s.closed {
		err := s.closeErr
		s.mu.Unlock()
		return nil, s.closedError(err)
	}
	s.pending[id] = ch
	s.mu.Unlock()

	s.writeMu.Lock()
	err := wire.SendRequest(s.conn, id, method, args, kwargs)
	s.writeMu.Unlock()
	if err != nil {
		s.dropPending(id)
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		s.dropPending(id)
		return nil, ctx.Err()
	case <-s.done:
		s.mu.Lock()
		cause := s.closeErr
		s.mu.Unlock()
		return nil, s.closedError(cause)
	case resp := <-ch:
		if resp.Err != nil {
			return nil, rpc.Specialize(resp.Err)
		}
		return resp.Result, nil
	}
}

// Close tears down the connection; pending calls fail with ErrSessionClosed.
func (s *Session) Close() error {
	err := s.conn.Close()
	s.shutdown(nil)
	return err
}

func (s *Session) closedError(cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %w", ErrSessionClosed, cause)
	}
	return ErrSessionClosed
}

func (s *Session) dropPending(id int64) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// readLoop is the single reader: it decodes each inbound message, resolves
// the matching pending call, or fans the event out. A message that fails to
// decode is dropped on its own; only transport errors end the session.
func (s *Session) readLoop() {
	for {
		fields, err := wire.ReadMessage(s.conn)
		if err != nil {
			s.shutdown(err)
			return
		}
		msg, err := rpc.DecodeInbound(fields)
		if err != nil {
			s.logger.Warn("dropping undecodable message", "error", err)
			continue
		}
		switch m := msg.(type) {
		case *rpc.Response:
			s.resolve(m)
		case *rpc.Event:
			s.fanOut(m)
		}
	}
}

func (s *Session) resolve(resp *rpc.Response) {
	s.mu.Lock()
	ch, ok := s.pending[resp.RequestID]
	if ok {
		delete(s.pending, resp.RequestID)
	}
	s.mu.Unlock()
	if !ok {
		s.logger.Warn("response for unknown request", "request_id", resp.RequestID)
		return
	}
	ch <- resp
}

func (s *Session) shutdown(cause error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if cause != nil && !errors.Is(cause, net.ErrClosed) {
		s.closeErr = cause
	}
	receivers := s.receivers
	s.receivers = make(map[*EventReceiver]struct{})
	s.pending = make(map[int64]chan *rpc.Response)
	s.mu.Unlock()

	close(s.done)
	for r := range receivers {
		close(r.c)
	}
	_ = s.conn.Close()
}
