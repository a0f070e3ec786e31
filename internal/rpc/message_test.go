package rpc_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quepf/deluge-rpc/internal/rpc"
)

func decodeResponse(t *testing.T, fields []any) *rpc.Response {
	t.Helper()
	msg, err := rpc.DecodeInbound(fields)
	if err != nil {
		t.Fatalf("DecodeInbound: %v", err)
	}
	resp, ok := msg.(*rpc.Response)
	if !ok {
		t.Fatalf("decoded %T, want *rpc.Response", msg)
	}
	return resp
}

func TestDecodeResponseListPayload(t *testing.T) {
	payload := []any{"first", int64(2), true}
	resp := decodeResponse(t, []any{int64(1), int64(42), payload})
	if resp.RequestID != 42 {
		t.Fatalf("request id = %d, want 42", resp.RequestID)
	}
	if resp.Err != nil {
		t.Fatalf("unexpected error: %v", resp.Err)
	}
	if !reflect.DeepEqual(resp.Result, payload) {
		t.Fatalf("result = %v, want %v", resp.Result, payload)
	}
}

func TestDecodeResponseScalarPayloadWraps(t *testing.T) {
	for _, scalar := range []any{true, int64(7), "done", nil} {
		resp := decodeResponse(t, []any{int64(1), int64(9), scalar})
		if !reflect.DeepEqual(resp.Result, []any{scalar}) {
			t.Errorf("scalar %v: result = %v, want single-element wrap", scalar, resp.Result)
		}
	}
}

func TestDecodeErrorResponse(t *testing.T) {
	fields := []any{
		int64(2), int64(17),
		"WrappedException",
		[]any{"something broke"},
		map[string]any{"fatal": true},
		"Traceback (most recent call last):\n  ...",
	}
	resp := decodeResponse(t, fields)
	if resp.RequestID != 17 {
		t.Fatalf("request id = %d, want 17", resp.RequestID)
	}
	if resp.Result != nil {
		t.Fatalf("unexpected result: %v", resp.Result)
	}
	remote := resp.Err
	if remote == nil {
		t.Fatal("expected remote error")
	}
	if remote.Exception != "WrappedException" {
		t.Errorf("exception = %q", remote.Exception)
	}
	if !reflect.DeepEqual(remote.Args, []any{"something broke"}) {
		t.Errorf("args = %v", remote.Args)
	}
	if !reflect.DeepEqual(remote.Kwargs, map[string]any{"fatal": true}) {
		t.Errorf("kwargs = %v", remote.Kwargs)
	}
	if remote.Traceback != "Traceback (most recent call last):\n  ..." {
		t.Errorf("traceback = %q", remote.Traceback)
	}
}

func TestDecodeEvent(t *testing.T) {
	data := []any{"d1a9ee1c6b8a9492b6314d91fa1e4c2b8890b6a5", int64(3)}
	msg, err := rpc.DecodeInbound([]any{int64(3), "TorrentStateChangedEvent", data})
	if err != nil {
		t.Fatalf("DecodeInbound: %v", err)
	}
	event, ok := msg.(*rpc.Event)
	if !ok {
		t.Fatalf("decoded %T, want *rpc.Event", msg)
	}
	if event.Name != "TorrentStateChangedEvent" {
		t.Errorf("name = %q", event.Name)
	}
	if !reflect.DeepEqual(event.Data, data) {
		t.Errorf("data = %v, want %v", event.Data, data)
	}
}

func TestDecodeRejectsUnknownTags(t *testing.T) {
	for _, tag := range []int64{0, 4, 255, -1} {
		_, err := rpc.DecodeInbound([]any{tag, int64(1), []any{}})
		var decodeErr *rpc.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("tag %d: error = %v, want *rpc.DecodeError", tag, err)
		}
	}
}

func TestDecodeRejectsMalformedMessages(t *testing.T) {
	cases := map[string][]any{
		"empty":                 {},
		"tag not integer":       {"1", int64(2), []any{}},
		"response missing body": {int64(1), int64(2)},
		"response id not int":   {int64(1), "two", []any{}},
		"error too short":       {int64(2), int64(5), "Exc", []any{}, map[string]any{}},
		"error bad args":        {int64(2), int64(5), "Exc", "not-a-list", map[string]any{}, "tb"},
		"error bad kwargs":      {int64(2), int64(5), "Exc", []any{}, "not-a-dict", "tb"},
		"error bad name":        {int64(2), int64(5), int64(9), []any{}, map[string]any{}, "tb"},
		"event missing data":    {int64(3), "SomeEvent"},
		"event name not string": {int64(3), int64(1), []any{}},
		"event data not list":   {int64(3), "SomeEvent", "scalar"},
	}
	for name, fields := range cases {
		_, err := rpc.DecodeInbound(fields)
		var decodeErr *rpc.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("%s: error = %v, want *rpc.DecodeError", name, err)
		}
	}
}
