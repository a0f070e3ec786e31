package wire

import (
	"context"
	"crypto/tls"
	"net"
)

// DialOptions configures the TLS connection to the daemon.
type DialOptions struct {
	// InsecureSkipVerify accepts the daemon's self-signed certificate,
	// which is what a stock daemon install presents.
	InsecureSkipVerify bool
	ServerName         string
}

// Dial opens a TLS connection to addr ("host:port") honoring ctx for the
// handshake deadline.
func Dial(ctx context.Context, addr string, opts DialOptions) (net.Conn, error) {
	serverName := opts.ServerName
	if serverName == "" {
		host, _, err := net.SplitHostPort(addr)
		if err == nil {
			serverName = host
		}
	}
	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName:         serverName,
			InsecureSkipVerify: opts.InsecureSkipVerify,
			MinVersion:         tls.VersionTLS12,
		},
	}
	return dialer.DialContext(ctx, "tcp", addr)
}
