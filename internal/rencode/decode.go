package rencode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrTruncated reports input that ends before the encoded value does.
var ErrTruncated = errors.New("rencode: truncated input")

// maxDepth bounds nesting so a hostile payload cannot exhaust the stack.
const maxDepth = 100

// Decode deserializes exactly one value and requires the input to be fully
// consumed, which is how the daemon frames its payloads.
func Decode(data []byte) (any, error) {
	d := decoder{data: data}
	value, err := d.value(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, fmt.Errorf("rencode: %d trailing bytes after value", len(d.data)-d.pos)
	}
	return value, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) value(depth int) (any, error) {
	if depth > maxDepth {
		return nil, errors.New("rencode: nesting too deep")
	}
	typ, err := d.byte()
	if err != nil {
		return nil, err
	}

	switch {
	case typ >= intPosFixedStart && typ < intPosFixedStart+intPosFixedCount:
		return int64(typ - intPosFixedStart), nil
	case typ >= intNegFixedStart && typ < intNegFixedStart+intNegFixedCount:
		return -1 - int64(typ-intNegFixedStart), nil
	case typ >= strFixedStart && typ < strFixedStart+strFixedCount:
		return d.str(int(typ - strFixedStart))
	case typ >= listFixedStart && int(typ) < listFixedStart+listFixedCount:
		return d.fixedList(int(typ-listFixedStart), depth)
	case typ >= dictFixedStart && typ < dictFixedStart+dictFixedCount:
		return d.fixedDict(int(typ-dictFixedStart), depth)
	}

	switch typ {
	case chrNone:
		return nil, nil
	case chrTrue:
		return true, nil
	case chrFalse:
		return false, nil
	case chrInt1:
		b, err := d.take(1)
		if err != nil {
			return nil, err
		}
		return int64(int8(b[0])), nil
	case chrInt2:
		b, err := d.take(2)
		if err != nil {
			return nil, err
		}
		return int64(int16(binary.BigEndian.Uint16(b))), nil
	case chrInt4:
		b, err := d.take(4)
		if err != nil {
			return nil, err
		}
		return int64(int32(binary.BigEndian.Uint32(b))), nil
	case chrInt8:
		b, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	case chrInt:
		return d.bigInt()
	case chrFloat32:
		b, err := d.take(4)
		if err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case chrFloat64:
		b, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	case chrList:
		return d.termList(depth)
	case chrDict:
		return d.termDict(depth)
	}

	if typ >= '0' && typ <= '9' {
		d.pos--
		return d.longStr()
	}
	return nil, fmt.Errorf("rencode: unknown type byte 0x%02x at offset %d", typ, d.pos-1)
}

func (d *decoder) byte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, ErrTruncated
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) take(n int) ([]byte, error) {
	if len(d.data)-d.pos < n {
		return nil, ErrTruncated
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) str(n int) (string, error) {
	b, err := d.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// longStr handles the bencode-style "<decimal length>:<bytes>" form used for
// strings of 64 bytes or more.
func (d *decoder) longStr() (string, error) {
	start := d.pos
	for {
		b, err := d.byte()
		if err != nil {
			return "", err
		}
		if b == ':' {
			break
		}
		if b < '0' || b > '9' {
			return "", fmt.Errorf("rencode: invalid string length byte 0x%02x", b)
		}
		if d.pos-start > 10 {
			return "", errors.New("rencode: string length literal too long")
		}
	}
	n, err := strconv.Atoi(string(d.data[start : d.pos-1]))
	if err != nil {
		return "", fmt.Errorf("rencode: parse string length: %w", err)
	}
	return d.str(n)
}

// bigInt reads the ASCII form the daemon uses for integers wider than 64
// bits. Values that still fit in int64 are returned as such; anything wider
// is rejected rather than silently truncated.
func (d *decoder) bigInt() (int64, error) {
	start := d.pos
	for {
		b, err := d.byte()
		if err != nil {
			return 0, err
		}
		if b == chrTerm {
			break
		}
		if d.pos-start > maxIntLength {
			return 0, errors.New("rencode: integer literal too long")
		}
	}
	literal := string(d.data[start : d.pos-1])
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rencode: integer %q out of range: %w", literal, err)
	}
	return n, nil
}

func (d *decoder) fixedList(n, depth int) ([]any, error) {
	items := make([]any, 0, n)
	for i := 0; i < n; i++ {
		item, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) termList(depth int) ([]any, error) {
	var items []any
	for {
		if d.pos < len(d.data) && d.data[d.pos] == chrTerm {
			d.pos++
			return items, nil
		}
		item, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (d *decoder) fixedDict(n, depth int) (map[string]any, error) {
	dict := make(map[string]any, n)
	for i := 0; i < n; i++ {
		if err := d.pair(dict, depth); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

func (d *decoder) termDict(depth int) (map[string]any, error) {
	dict := make(map[string]any)
	for {
		if d.pos < len(d.data) && d.data[d.pos] == chrTerm {
			d.pos++
			return dict, nil
		}
		if err := d.pair(dict, depth); err != nil {
			return nil, err
		}
	}
}

func (d *decoder) pair(dict map[string]any, depth int) error {
	rawKey, err := d.value(depth + 1)
	if err != nil {
		return err
	}
	var key string
	switch k := rawKey.(type) {
	case string:
		key = k
	case int64:
		// The daemon occasionally keys dicts by integers (auth level maps).
		key = strconv.FormatInt(k, 10)
	default:
		return fmt.Errorf("rencode: unsupported dict key type %T", rawKey)
	}
	value, err := d.value(depth + 1)
	if err != nil {
		return err
	}
	dict[key] = value
	return nil
}
