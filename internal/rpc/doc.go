// Package rpc decodes inbound Deluge daemon messages and normalizes the
// daemon's string-based exceptions into typed errors.
//
// A decoded wire payload arrives as a flat, loosely typed value sequence
// whose first element is a message tag. DecodeInbound validates the tag,
// then decodes only the fields that tag requires, yielding a Response or an
// Event. Remote failures arrive as a generic four-field exception record;
// Specialize recognizes known exception vocabularies (currently the torrent
// add path) and decomposes their formatted messages into variants callers
// can match on with errors.As, falling back to the untouched generic record
// for everything else.
//
// Both transforms are pure and stateless, so any number of decode paths may
// share them without coordination.
package rpc
