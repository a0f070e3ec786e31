// Package wire frames Deluge RPC payloads for the daemon's TLS transport.
//
// Each frame is a one-byte protocol version, a big-endian uint32 body
// length, and a zlib-compressed rencode body. Outbound requests are the
// daemon's [[request_id, method, args, kwargs]] shape; inbound frames decode
// to the flat value sequence the rpc package dispatches on.
package wire

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/quepf/deluge-rpc/internal/rencode"
)

const (
	protocolVersion = 1
	headerSize      = 5

	// Upper bound on a compressed body; a daemon will never legitimately
	// exceed this and a hostile length must not drive allocation.
	maxBodySize = 64 << 20
)

// WriteFrame encodes value and writes one complete frame.
func WriteFrame(w io.Writer, value any) error {
	payload, err := rencode.Encode(value)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	var body bytes.Buffer
	zw := zlib.NewWriter(&body)
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("compress frame: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress frame: %w", err)
	}

	header := make([]byte, headerSize)
	header[0] = protocolVersion
	binary.BigEndian.PutUint32(header[1:], uint32(body.Len()))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("write frame body: %w", err)
	}
	return nil
}

// ReadFrame reads one complete frame and returns its decoded value.
func ReadFrame(r io.Reader) (any, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if header[0] != protocolVersion {
		return nil, fmt.Errorf("unsupported protocol version %d", header[0])
	}
	bodyLen := binary.BigEndian.Uint32(header[1:])
	if bodyLen > maxBodySize {
		return nil, fmt.Errorf("frame body of %d bytes exceeds limit", bodyLen)
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read frame body: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decompress frame: %w", err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(io.LimitReader(zr, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("decompress frame: %w", err)
	}
	if len(payload) > maxBodySize {
		return nil, fmt.Errorf("frame payload exceeds %d bytes", maxBodySize)
	}

	value, err := rencode.Decode(payload)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// SendRequest writes one outbound call in the daemon's nested request shape.
func SendRequest(w io.Writer, requestID int64, method string, args []any, kwargs map[string]any) error {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return WriteFrame(w, []any{[]any{requestID, method, args, kwargs}})
}

// ReadMessage reads one inbound frame and requires the flat list shape the
// message dispatcher consumes.
func ReadMessage(r io.Reader) ([]any, error) {
	value, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	fields, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("inbound frame is %T, want list", value)
	}
	return fields, nil
}
