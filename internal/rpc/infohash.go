package rpc

import (
	"encoding/hex"
	"fmt"
)

// InfoHash is the 20-byte torrent content identifier, rendered by the daemon
// as 40 hexadecimal characters.
type InfoHash [20]byte

// ParseInfoHash decodes a 40-character hex string into an InfoHash.
func ParseInfoHash(s string) (InfoHash, error) {
	var hash InfoHash
	if len(s) != 40 {
		return hash, fmt.Errorf("info hash: expected 40 hex characters, got %d", len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return hash, fmt.Errorf("info hash: %w", err)
	}
	copy(hash[:], raw)
	return hash, nil
}

// mustParseInfoHash is for inputs already validated (e.g. a regex match over
// exactly 40 hex characters); failure indicates a defect, not bad input.
func mustParseInfoHash(s string) InfoHash {
	hash, err := ParseInfoHash(s)
	if err != nil {
		panic("rpc: invalid pre-validated info hash: " + err.Error())
	}
	return hash
}

func (h InfoHash) String() string {
	return hex.EncodeToString(h[:])
}
