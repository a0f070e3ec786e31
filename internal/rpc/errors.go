package rpc

import (
	"fmt"
	"regexp"
	"strings"
)

// RemoteError is an exception raised by the daemon, in its native untyped
// form: exception class name, positional args, keyword args, and the
// formatted traceback. It is only ever constructed from the four-field wire
// tuple of a failed response, never by this client.
type RemoteError struct {
	Exception string
	Args      []any
	Kwargs    map[string]any
	Traceback string
}

func (e *RemoteError) Error() string {
	if e.Traceback != "" {
		return e.Traceback
	}
	return e.Exception
}

// decodeRemoteError decodes the fixed (exception, args, kwargs, traceback)
// tuple. Wrong arity or field types fail this message only.
func decodeRemoteError(fields []any) (*RemoteError, error) {
	if len(fields) != 4 {
		return nil, decodeErrorf("exception tuple has %d fields, want 4", len(fields))
	}
	exception, ok := fields[0].(string)
	if !ok {
		return nil, decodeErrorf("exception name is %T, want string", fields[0])
	}
	args, ok := fields[1].([]any)
	if !ok {
		return nil, decodeErrorf("exception args are %T, want list", fields[1])
	}
	kwargs, ok := fields[2].(map[string]any)
	if !ok {
		return nil, decodeErrorf("exception kwargs are %T, want dict", fields[2])
	}
	traceback, ok := fields[3].(string)
	if !ok {
		return nil, decodeErrorf("exception traceback is %T, want string", fields[3])
	}
	return &RemoteError{Exception: exception, Args: args, Kwargs: kwargs, Traceback: traceback}, nil
}

// AddTorrentKind discriminates the known failure modes of the daemon's
// torrent add path.
type AddTorrentKind int

const (
	AddTorrentAlreadyInSession AddTorrentKind = iota
	AddTorrentAlreadyBeingAdded
	AddTorrentUnableToAddMagnet
	AddTorrentMustSpecifyValidTorrent
	AddTorrentDecodingFiledumpFailed
	AddTorrentUnableToAddToSession
	AddTorrentOther
)

// AddTorrentError is a daemon AddTorrentError decomposed into structured
// fields. Hash is set for the two duplicate-torrent kinds; Detail carries
// the payload text of the remaining kinds, including the verbatim message
// for AddTorrentOther.
type AddTorrentError struct {
	Kind   AddTorrentKind
	Hash   InfoHash
	Detail string
}

func (e *AddTorrentError) Error() string {
	switch e.Kind {
	case AddTorrentAlreadyInSession:
		return "torrent already in session: " + e.Hash.String()
	case AddTorrentAlreadyBeingAdded:
		return "torrent already being added: " + e.Hash.String()
	case AddTorrentUnableToAddMagnet:
		return "invalid magnet info: " + e.Detail
	case AddTorrentMustSpecifyValidTorrent:
		return "must specify a valid torrent"
	case AddTorrentDecodingFiledumpFailed:
		return "decoding filedump failed: " + e.Detail
	case AddTorrentUnableToAddToSession:
		return "unable to add torrent to session: " + e.Detail
	default:
		return e.Detail
	}
}

// The daemon reports add failures as formatted strings, not structured
// data, so these literal templates are the parsing contract. The catch-all
// Other kind keeps us forward compatible if the daemon's wording changes.
var (
	reAlreadyInSession  = regexp.MustCompile(`^Torrent already in session \([0-9a-fA-F]{40}\)\.$`)
	reAlreadyBeingAdded = regexp.MustCompile(`^Torrent already being added \([0-9a-fA-F]{40}\)\.$`)
)

const (
	prefixInvalidMagnet  = "Unable to add magnet, invalid magnet info: "
	msgMustSpecifyValid  = "You must specify a valid torrent_info, torrent state or magnet."
	prefixFiledumpFailed = "Unable to add torrent, decoding filedump failed: "
	prefixSessionFailed  = "Unable to add torrent to session: "
)

// parseAddTorrentMessage matches first-match-wins over the template list.
// The hash slices sit at fixed offsets inside the matched text and are
// guaranteed hexadecimal by the regex, so extraction cannot fail.
func parseAddTorrentMessage(msg string) *AddTorrentError {
	switch {
	case reAlreadyInSession.MatchString(msg):
		return &AddTorrentError{Kind: AddTorrentAlreadyInSession, Hash: mustParseInfoHash(msg[28:68])}
	case reAlreadyBeingAdded.MatchString(msg):
		return &AddTorrentError{Kind: AddTorrentAlreadyBeingAdded, Hash: mustParseInfoHash(msg[29:69])}
	case strings.HasPrefix(msg, prefixInvalidMagnet):
		return &AddTorrentError{Kind: AddTorrentUnableToAddMagnet, Detail: msg[len(prefixInvalidMagnet):]}
	case msg == msgMustSpecifyValid:
		return &AddTorrentError{Kind: AddTorrentMustSpecifyValidTorrent}
	case strings.HasPrefix(msg, prefixFiledumpFailed):
		return &AddTorrentError{Kind: AddTorrentDecodingFiledumpFailed, Detail: msg[len(prefixFiledumpFailed):]}
	case strings.HasPrefix(msg, prefixSessionFailed):
		return &AddTorrentError{Kind: AddTorrentUnableToAddToSession, Detail: msg[len(prefixSessionFailed):]}
	default:
		return &AddTorrentError{Kind: AddTorrentOther, Detail: msg}
	}
}

// Specialize maps a remote error to its typed form. Only the daemon's
// AddTorrentError carrying exactly one string argument is decomposed
// further; every other exception passes through unchanged so nothing is
// lost for display or logging. Adding a new specialization means adding a
// new (exception, argument shape) arm here; unrecognized pairs must keep
// their current pass-through behavior.
func Specialize(err *RemoteError) error {
	if err == nil {
		return nil
	}
	if err.Exception == "AddTorrentError" && len(err.Args) == 1 {
		if msg, ok := err.Args[0].(string); ok {
			return parseAddTorrentMessage(msg)
		}
	}
	return err
}

// DecodeError reports a malformed wire message: an unrecognized tag, a
// missing required field, or a type mismatch in a required position. It is
// local to one message and never invalidates other in-flight traffic.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "decode message: " + e.Reason
}

func decodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}
