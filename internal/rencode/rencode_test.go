package rencode_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/quepf/deluge-rpc/internal/rencode"
)

func roundTrip(t *testing.T, value any) any {
	t.Helper()
	encoded, err := rencode.Encode(value)
	if err != nil {
		t.Fatalf("Encode(%v): %v", value, err)
	}
	decoded, err := rencode.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode(%x): %v", encoded, err)
	}
	return decoded
}

func TestIntegerRoundTrip(t *testing.T) {
	// Boundary values across every integer width the format distinguishes.
	values := []int64{
		0, 1, 43, 44, -1, -32, -33,
		127, -128, 128, -129,
		32767, -32768, 32768, -32769,
		math.MaxInt32, math.MinInt32,
		int64(math.MaxInt32) + 1, int64(math.MinInt32) - 1,
		math.MaxInt64, math.MinInt64,
	}
	for _, want := range values {
		got := roundTrip(t, want)
		if got != want {
			t.Errorf("round trip %d: got %v (%T)", want, got, got)
		}
	}
}

func TestBigUintUsesASCIIForm(t *testing.T) {
	encoded, err := rencode.Encode(uint64(math.MaxUint64))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if encoded[0] != 61 { // CHR_INT
		t.Fatalf("expected ASCII integer form, got type byte %d", encoded[0])
	}
	// Beyond int64 range, so the defensive decoder must refuse it.
	if _, err := rencode.Decode(encoded); err == nil {
		t.Fatal("expected out-of-range error decoding MaxUint64")
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, want := range []string{
		"",
		"a",
		strings.Repeat("x", 63),
		strings.Repeat("x", 64),
		strings.Repeat("x", 1000),
		"snowman ☃",
	} {
		got := roundTrip(t, want)
		if got != want {
			t.Errorf("round trip %q: got %v", want, got)
		}
	}
}

func TestScalarsRoundTrip(t *testing.T) {
	if got := roundTrip(t, nil); got != nil {
		t.Errorf("nil: got %v", got)
	}
	if got := roundTrip(t, true); got != true {
		t.Errorf("true: got %v", got)
	}
	if got := roundTrip(t, false); got != false {
		t.Errorf("false: got %v", got)
	}
	if got := roundTrip(t, float64(1.5)); got != 1.5 {
		t.Errorf("float64: got %v", got)
	}
	if got := roundTrip(t, float32(0.25)); got != 0.25 {
		t.Errorf("float32: got %v", got)
	}
}

func TestListRoundTrip(t *testing.T) {
	small := []any{int64(1), "two", true, nil}
	if got := roundTrip(t, small); !reflect.DeepEqual(got, small) {
		t.Errorf("small list: got %v", got)
	}

	// 64 elements forces the terminated long-list form.
	large := make([]any, 64)
	for i := range large {
		large[i] = int64(i)
	}
	if got := roundTrip(t, large); !reflect.DeepEqual(got, large) {
		t.Errorf("large list: got %v", got)
	}
}

func TestDictRoundTrip(t *testing.T) {
	small := map[string]any{"name": "ubuntu.iso", "paused": false, "size": int64(123456)}
	if got := roundTrip(t, small); !reflect.DeepEqual(got, small) {
		t.Errorf("small dict: got %v", got)
	}

	// 25 keys forces the terminated long-dict form.
	large := make(map[string]any, 25)
	for i := 0; i < 25; i++ {
		large[strings.Repeat("k", i+1)] = int64(i)
	}
	if got := roundTrip(t, large); !reflect.DeepEqual(got, large) {
		t.Errorf("large dict: got %v", got)
	}
}

func TestNestedRoundTrip(t *testing.T) {
	want := []any{
		int64(1),
		map[string]any{
			"files": []any{"a", "b"},
			"opts":  map[string]any{"add_paused": true},
		},
	}
	if got := roundTrip(t, want); !reflect.DeepEqual(got, want) {
		t.Errorf("nested: got %v", got)
	}
}

func TestDecodeTruncated(t *testing.T) {
	full, err := rencode.Encode([]any{"hello", int64(70000)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for n := 0; n < len(full); n++ {
		if _, err := rencode.Decode(full[:n]); err == nil {
			t.Errorf("Decode(%d of %d bytes): expected error", n, len(full))
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	encoded, err := rencode.Encode(int64(7))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := rencode.Decode(append(encoded, 0x01)); err == nil {
		t.Fatal("expected trailing-bytes error")
	}
}

func TestDecodeUnknownTypeByte(t *testing.T) {
	// 0x2d ('-') is not a valid type byte outside an integer literal.
	if _, err := rencode.Decode([]byte{0x2d}); err == nil {
		t.Fatal("expected unknown-type error")
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	if _, err := rencode.Decode(nil); !errors.Is(err, rencode.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestEncodeUnsupportedType(t *testing.T) {
	if _, err := rencode.Encode(struct{}{}); err == nil {
		t.Fatal("expected unsupported-type error")
	}
}

func TestFixedIntEncodingIsSingleByte(t *testing.T) {
	for _, tc := range []struct {
		value int64
		want  byte
	}{
		{0, 0},
		{43, 43},
		{-1, 70},
		{-32, 101},
	} {
		encoded, err := rencode.Encode(tc.value)
		if err != nil {
			t.Fatalf("Encode(%d): %v", tc.value, err)
		}
		if !bytes.Equal(encoded, []byte{tc.want}) {
			t.Errorf("Encode(%d) = %x, want %x", tc.value, encoded, []byte{tc.want})
		}
	}
}
