package deluge

import (
	"fmt"

	"github.com/quepf/deluge-rpc/internal/rpc"
)

// Result conversion helpers. Wire results are positional []any sequences;
// every wrapper picks out its declared shape here so shape surprises turn
// into clear errors naming the method.

func resultValue(result []any, method string) (any, error) {
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return result[0], nil
}

func resultNone(result []any, method string) error {
	// Methods declared to return nothing come back as a single nil.
	if len(result) > 0 && result[0] != nil {
		return fmt.Errorf("%s: unexpected result %v", method, result[0])
	}
	return nil
}

func resultString(result []any, method string) (string, error) {
	v, err := resultValue(result, method)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: result is %T, want string", method, v)
	}
	return s, nil
}

func resultBool(result []any, method string) (bool, error) {
	v, err := resultValue(result, method)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: result is %T, want bool", method, v)
	}
	return b, nil
}

func resultInt(result []any, method string) (int64, error) {
	v, err := resultValue(result, method)
	if err != nil {
		return 0, err
	}
	n, ok := looseInt(v)
	if !ok {
		return 0, fmt.Errorf("%s: result is %T, want integer", method, v)
	}
	return n, nil
}

func resultStringSlice(result []any, method string) ([]string, error) {
	v, err := resultValue(result, method)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: result is %T, want list", method, v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: element %d is %T, want string", method, i, item)
		}
		out[i] = s
	}
	return out, nil
}

func resultStringMap(result []any, method string) (map[string]any, error) {
	v, err := resultValue(result, method)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: result is %T, want dict", method, v)
	}
	return m, nil
}

func resultInfoHash(result []any, method string) (rpc.InfoHash, error) {
	s, err := resultString(result, method)
	if err != nil {
		return rpc.InfoHash{}, err
	}
	hash, err := rpc.ParseInfoHash(s)
	if err != nil {
		return rpc.InfoHash{}, fmt.Errorf("%s: %w", method, err)
	}
	return hash, nil
}

// resultOptionalInfoHash handles methods that return either a hash or nil.
func resultOptionalInfoHash(result []any, method string) (*rpc.InfoHash, error) {
	v, err := resultValue(result, method)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s: result is %T, want string or nil", method, v)
	}
	hash, err := rpc.ParseInfoHash(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return &hash, nil
}

func resultInfoHashSlice(result []any, method string) ([]rpc.InfoHash, error) {
	strs, err := resultStringSlice(result, method)
	if err != nil {
		return nil, err
	}
	hashes := make([]rpc.InfoHash, len(strs))
	for i, s := range strs {
		hash, err := rpc.ParseInfoHash(s)
		if err != nil {
			return nil, fmt.Errorf("%s: element %d: %w", method, i, err)
		}
		hashes[i] = hash
	}
	return hashes, nil
}

func looseInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func looseFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func hashArgs(hashes []rpc.InfoHash) []any {
	out := make([]any, len(hashes))
	for i, hash := range hashes {
		out[i] = hash.String()
	}
	return out
}
