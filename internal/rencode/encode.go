package rencode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// Encode serializes a loosely typed value into rencode bytes.
//
// Supported types: nil, bool, all Go integer widths, float32, float64,
// string, []byte, []any, and map[string]any. Anything else is rejected so
// callers cannot silently send values the daemon will misread.
func Encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case nil:
		buf.WriteByte(chrNone)
	case bool:
		if v {
			buf.WriteByte(chrTrue)
		} else {
			buf.WriteByte(chrFalse)
		}
	case int:
		encodeInt(buf, int64(v))
	case int8:
		encodeInt(buf, int64(v))
	case int16:
		encodeInt(buf, int64(v))
	case int32:
		encodeInt(buf, int64(v))
	case int64:
		encodeInt(buf, v)
	case uint:
		encodeUint(buf, uint64(v))
	case uint8:
		encodeInt(buf, int64(v))
	case uint16:
		encodeInt(buf, int64(v))
	case uint32:
		encodeInt(buf, int64(v))
	case uint64:
		encodeUint(buf, v)
	case float32:
		buf.WriteByte(chrFloat32)
		var scratch [4]byte
		binary.BigEndian.PutUint32(scratch[:], math.Float32bits(v))
		buf.Write(scratch[:])
	case float64:
		buf.WriteByte(chrFloat64)
		var scratch [8]byte
		binary.BigEndian.PutUint64(scratch[:], math.Float64bits(v))
		buf.Write(scratch[:])
	case string:
		encodeBytes(buf, []byte(v))
	case []byte:
		encodeBytes(buf, v)
	case []any:
		return encodeList(buf, v)
	case map[string]any:
		return encodeDict(buf, v)
	default:
		return fmt.Errorf("rencode: unsupported type %T", value)
	}
	return nil
}

func encodeInt(buf *bytes.Buffer, v int64) {
	switch {
	case v >= 0 && v < intPosFixedCount:
		buf.WriteByte(byte(intPosFixedStart + v))
	case v < 0 && v >= -intNegFixedCount:
		buf.WriteByte(byte(intNegFixedStart - 1 - v))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		buf.WriteByte(chrInt1)
		buf.WriteByte(byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		buf.WriteByte(chrInt2)
		var scratch [2]byte
		binary.BigEndian.PutUint16(scratch[:], uint16(int16(v)))
		buf.Write(scratch[:])
	case v >= math.MinInt32 && v <= math.MaxInt32:
		buf.WriteByte(chrInt4)
		var scratch [4]byte
		binary.BigEndian.PutUint32(scratch[:], uint32(int32(v)))
		buf.Write(scratch[:])
	default:
		buf.WriteByte(chrInt8)
		var scratch [8]byte
		binary.BigEndian.PutUint64(scratch[:], uint64(v))
		buf.Write(scratch[:])
	}
}

// encodeUint falls back to the ASCII big-integer form for values beyond
// int64 range, which the daemon accepts for its unbounded Python ints.
func encodeUint(buf *bytes.Buffer, v uint64) {
	if v <= math.MaxInt64 {
		encodeInt(buf, int64(v))
		return
	}
	buf.WriteByte(chrInt)
	buf.WriteString(strconv.FormatUint(v, 10))
	buf.WriteByte(chrTerm)
}

func encodeBytes(buf *bytes.Buffer, b []byte) {
	if len(b) < strFixedCount {
		buf.WriteByte(byte(strFixedStart + len(b)))
	} else {
		buf.WriteString(strconv.Itoa(len(b)))
		buf.WriteByte(':')
	}
	buf.Write(b)
}

func encodeList(buf *bytes.Buffer, items []any) error {
	if len(items) < listFixedCount {
		buf.WriteByte(byte(listFixedStart + len(items)))
		for _, item := range items {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		return nil
	}
	buf.WriteByte(chrList)
	for _, item := range items {
		if err := encodeValue(buf, item); err != nil {
			return err
		}
	}
	buf.WriteByte(chrTerm)
	return nil
}

func encodeDict(buf *bytes.Buffer, dict map[string]any) error {
	if len(dict) < dictFixedCount {
		buf.WriteByte(byte(dictFixedStart + len(dict)))
		for key, item := range dict {
			encodeBytes(buf, []byte(key))
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		return nil
	}
	buf.WriteByte(chrDict)
	for key, item := range dict {
		encodeBytes(buf, []byte(key))
		if err := encodeValue(buf, item); err != nil {
			return err
		}
	}
	buf.WriteByte(chrTerm)
	return nil
}
