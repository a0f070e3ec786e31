// Package deluge maintains an authenticated RPC session with a Deluge
// daemon.
//
// A Session owns the TLS connection, assigns request ids, and runs a single
// reader goroutine that correlates responses to pending calls and fans
// events out to subscriber channels. Remote failures come back already
// normalized by the rpc package, local misuse (calling above the session's
// auth level, configuring event interest with no receiver) is reported
// distinctly so it cannot be confused with a daemon-side condition.
//
// The exported method wrappers mirror the daemon's daemon.* and core.*
// surfaces; each supplies its method name and converts between typed Go
// values and the daemon's loosely typed wire form.
package deluge
