package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/deluge"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon version, listen port, and session totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				version, err := session.GetVersion(callCtx)
				if err != nil {
					return err
				}
				libtorrent, err := session.GetLibtorrentVersion(callCtx)
				if err != nil {
					return err
				}
				port, err := session.GetListenPort(callCtx)
				if err != nil {
					return err
				}
				freeSpace, err := session.GetFreeSpace(callCtx, "")
				if err != nil {
					return err
				}
				torrents, err := session.GetSessionState(callCtx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Daemon:      %s (libtorrent %s)\n", version, libtorrent)
				fmt.Fprintf(out, "Auth level:  %s\n", session.AuthLevel())
				fmt.Fprintf(out, "Listen port: %d\n", port)
				fmt.Fprintf(out, "Free space:  %s\n", formatBytes(freeSpace))
				fmt.Fprintf(out, "Torrents:    %d\n", len(torrents))
				return nil
			})
		},
	}
}

func newVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the daemon version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				version, err := session.GetVersion(callCtx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})
		},
	}
}

func newFreeSpaceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "free-space [path]",
		Short: "Show free disk space on the daemon host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				freeSpace, err := session.GetFreeSpace(callCtx, path)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatBytes(freeSpace))
				return nil
			})
		},
	}
}

func newShutdownCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Ask the daemon process to exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				if err := session.Shutdown(callCtx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "shutdown requested")
				return nil
			})
		},
	}
}
