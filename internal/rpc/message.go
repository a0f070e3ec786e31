package rpc

// Message tags, assigned by the daemon's framing.
const (
	tagResponse = 1
	tagError    = 2
	tagEvent    = 3
)

// Inbound is one decoded unit of the daemon wire protocol: a Response
// correlated to an outstanding request, or an out-of-band Event.
type Inbound interface {
	inbound()
}

// Response carries the outcome of one call. Exactly one of Result and Err
// is meaningful: Err is nil on success, and Result holds the returned
// values in wire order.
type Response struct {
	RequestID int64
	Result    []any
	Err       *RemoteError
}

// Event is an out-of-band notification with its positional payload.
type Event struct {
	Name string
	Data []any
}

func (*Response) inbound() {}
func (*Event) inbound()    {}

// DecodeInbound turns a raw multiplexed message into exactly one Inbound
// variant. The tag at position 0 is validated first; only then are the
// fields that tag requires decoded. Stateless and side-effect free.
func DecodeInbound(fields []any) (Inbound, error) {
	if len(fields) == 0 {
		return nil, decodeErrorf("empty message")
	}
	tag, ok := asInt(fields[0])
	if !ok {
		return nil, decodeErrorf("message tag is %T, want integer", fields[0])
	}

	switch tag {
	case tagResponse:
		if len(fields) < 3 {
			return nil, decodeErrorf("response has %d fields, want at least 3", len(fields))
		}
		id, ok := asInt(fields[1])
		if !ok {
			return nil, decodeErrorf("request id is %T, want integer", fields[1])
		}
		// Some daemon methods return a bare scalar instead of a list;
		// wrap it rather than failing the whole message.
		result, ok := fields[2].([]any)
		if !ok {
			result = []any{fields[2]}
		}
		return &Response{RequestID: id, Result: result}, nil

	case tagError:
		if len(fields) < 6 {
			return nil, decodeErrorf("error response has %d fields, want at least 6", len(fields))
		}
		id, ok := asInt(fields[1])
		if !ok {
			return nil, decodeErrorf("request id is %T, want integer", fields[1])
		}
		remote, err := decodeRemoteError(fields[2:6])
		if err != nil {
			return nil, err
		}
		return &Response{RequestID: id, Err: remote}, nil

	case tagEvent:
		if len(fields) < 3 {
			return nil, decodeErrorf("event has %d fields, want at least 3", len(fields))
		}
		name, ok := fields[1].(string)
		if !ok {
			return nil, decodeErrorf("event name is %T, want string", fields[1])
		}
		data, ok := fields[2].([]any)
		if !ok {
			return nil, decodeErrorf("event data is %T, want list", fields[2])
		}
		return &Event{Name: name, Data: data}, nil
	}
	return nil, decodeErrorf("unrecognized message tag %d", tag)
}

// asInt accepts the integer widths a loosely typed decode can produce.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}
