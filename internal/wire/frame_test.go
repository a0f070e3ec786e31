package wire_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"reflect"
	"testing"

	"github.com/quepf/deluge-rpc/internal/wire"
)

func TestFrameRoundTrip(t *testing.T) {
	want := []any{int64(1), int64(42), []any{"ok", true}}
	var buf bytes.Buffer
	if err := wire.WriteFrame(&buf, want); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := wire.ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip = %v, want %v", got, want)
	}
	if buf.Len() != 0 {
		t.Fatalf("%d bytes left unread", buf.Len())
	}
}

func TestFrameHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := wire.WriteFrame(&buf, []any{int64(3), "TorrentAddedEvent", []any{}}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	raw := buf.Bytes()
	if raw[0] != 1 {
		t.Errorf("protocol version byte = %d, want 1", raw[0])
	}
	bodyLen := binary.BigEndian.Uint32(raw[1:5])
	if int(bodyLen) != len(raw)-5 {
		t.Errorf("declared body length %d, actual %d", bodyLen, len(raw)-5)
	}
}

func TestSendRequestShape(t *testing.T) {
	var buf bytes.Buffer
	if err := wire.SendRequest(&buf, 7, "core.get_session_state", nil, nil); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	value, err := wire.ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	want := []any{[]any{int64(7), "core.get_session_state", []any{}, map[string]any{}}}
	if !reflect.DeepEqual(value, want) {
		t.Fatalf("request frame = %v, want %v", value, want)
	}
}

func TestReadFrameRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := wire.WriteFrame(&buf, []any{int64(1)}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	raw := buf.Bytes()
	raw[0] = 9
	if _, err := wire.ReadFrame(bytes.NewReader(raw)); err == nil {
		t.Fatal("expected protocol version error")
	}
}

func TestReadFrameRejectsOversizedBody(t *testing.T) {
	header := make([]byte, 5)
	header[0] = 1
	binary.BigEndian.PutUint32(header[1:], 1<<31)
	if _, err := wire.ReadFrame(bytes.NewReader(header)); err == nil {
		t.Fatal("expected body size error")
	}
}

func TestReadFrameShortRead(t *testing.T) {
	var buf bytes.Buffer
	if err := wire.WriteFrame(&buf, []any{int64(1), int64(2), []any{"x"}}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	raw := buf.Bytes()
	if _, err := wire.ReadFrame(bytes.NewReader(raw[:len(raw)-1])); err == nil {
		t.Fatal("expected short-read error")
	}
	if _, err := wire.ReadFrame(bytes.NewReader(nil)); err != io.EOF {
		t.Fatalf("empty reader: error = %v, want io.EOF", err)
	}
}

func TestReadMessageRequiresList(t *testing.T) {
	var buf bytes.Buffer
	if err := wire.WriteFrame(&buf, "not-a-list"); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if _, err := wire.ReadMessage(&buf); err == nil {
		t.Fatal("expected non-list frame error")
	}
}
