// Package rencode implements the compact serialization format the Deluge
// daemon uses for RPC payloads.
//
// The format is bencode-like but denser: small integers, short strings,
// short lists, and small dicts are folded into single-byte type ranges,
// while larger values carry an explicit width or a terminator byte. Values
// decode into loosely typed Go values (int64, string, bool, float64, nil,
// []any, map[string]any) which the rpc package then interprets per message.
//
// The decoder never trusts input: truncated payloads, unknown type bytes,
// and oversized integer literals return errors rather than panicking.
package rencode
