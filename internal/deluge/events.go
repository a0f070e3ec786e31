package deluge

import (
	"context"

	"github.com/quepf/deluge-rpc/internal/rpc"
)

// EventReceiver is one independent subscription to the session's event
// stream. Its channel is closed when the receiver or the session closes.
type EventReceiver struct {
	c chan rpc.Event
	s *Session
}

// Events is the receive side of the subscription.
func (r *EventReceiver) Events() <-chan rpc.Event {
	return r.c
}

// Close detaches the receiver and closes its channel.
func (r *EventReceiver) Close() {
	r.s.mu.Lock()
	_, ok := r.s.receivers[r]
	if ok {
		delete(r.s.receivers, r)
	}
	r.s.mu.Unlock()
	if ok {
		close(r.c)
	}
}

// SubscribeEvents registers a new receiver with the given channel capacity.
// Events arriving while a receiver's channel is full are dropped for that
// receiver only.
func (s *Session) SubscribeEvents(buffer int) *EventReceiver {
	if buffer <= 0 {
		buffer = 16
	}
	r := &EventReceiver{c: make(chan rpc.Event, buffer), s: s}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(r.c)
		return r
	}
	s.receivers[r] = struct{}{}
	s.mu.Unlock()
	return r
}

func (s *Session) receiverCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receivers)
}

func (s *Session) fanOut(event *rpc.Event) {
	s.mu.Lock()
	receivers := make([]*EventReceiver, 0, len(s.receivers))
	for r := range s.receivers {
		receivers = append(receivers, r)
	}
	s.mu.Unlock()

	for _, r := range receivers {
		select {
		case r.c <- *event:
		default:
			s.logger.Warn("event receiver full, dropping event", "event", event.Name)
		}
	}
}

// SetEventInterest configures server-side event filtering for the given
// event names. Calling it with no active receiver is a call-site bug, not a
// runtime condition, and panics accordingly.
func (s *Session) SetEventInterest(ctx context.Context, events []string) (bool, error) {
	if s.receiverCount() == 0 {
		panic("deluge: SetEventInterest without an active event receiver (call SubscribeEvents first)")
	}
	names := make([]any, len(events))
	for i, name := range events {
		names[i] = name
	}
	result, err := s.Call(ctx, "daemon.set_event_interest", []any{names}, nil)
	if err != nil {
		return false, err
	}
	return resultBool(result, "daemon.set_event_interest")
}
