package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/deluge"
	"github.com/quepf/deluge-rpc/internal/logging"
	"github.com/quepf/deluge-rpc/internal/wire"
)

// defaultEventInterest is what the daemon is asked to forward when the user
// does not name specific events.
var defaultEventInterest = []string{
	"TorrentAddedEvent",
	"TorrentRemovedEvent",
	"TorrentFinishedEvent",
	"TorrentStateChangedEvent",
	"TorrentTrackerStatusEvent",
	"SessionPausedEvent",
	"SessionResumedEvent",
}

func newEventsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "events [event-name ...]",
		Short: "Stream daemon events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			interest := defaultEventInterest
			if len(args) > 0 {
				interest = args
			}
			return ctx.streamEvents(cmd, interest)
		},
	}
}

// streamEvents keeps its own session: unlike one-shot commands the stream
// lives until the command context is cancelled, so the usual per-call
// timeout only bounds dial and login.
func (c *commandContext) streamEvents(cmd *cobra.Command, interest []string) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	addr, username, password, err := c.endpoint()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}

	streamCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(streamCtx, c.callTimeout())
	defer cancel()

	session, err := deluge.Connect(dialCtx, deluge.Options{
		Addr:   addr,
		TLS:    wire.DialOptions{InsecureSkipVerify: cfg.Daemon.TLSSkipVerify},
		Logger: logger,
	})
	if err != nil {
		return wrapDialError(err, addr)
	}
	defer session.Close()

	if username != "" {
		if _, err := session.Login(dialCtx, username, password); err != nil {
			return fmt.Errorf("login as %s: %w", username, err)
		}
	}

	receiver := session.SubscribeEvents(64)
	defer receiver.Close()

	if _, err := session.SetEventInterest(dialCtx, interest); err != nil {
		return fmt.Errorf("register event interest: %w", err)
	}
	cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "listening for %s (ctrl-c to stop)\n", strings.Join(interest, ", "))

	for {
		select {
		case <-streamCtx.Done():
			return nil
		case event, ok := <-receiver.Events():
			if !ok {
				return fmt.Errorf("event stream: %w", deluge.ErrSessionClosed)
			}
			stamp := time.Now().Format("15:04:05")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", stamp, event.Name, formatEventData(event.Data))
		}
	}
}

func formatEventData(data []any) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, 0, len(data))
	for _, item := range data {
		parts = append(parts, fmt.Sprintf("%v", item))
	}
	return strings.Join(parts, " ")
}
