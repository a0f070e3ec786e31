package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/deluge"
	"github.com/quepf/deluge-rpc/internal/rpc"
)

func newPauseCommand(ctx *commandContext) *cobra.Command {
	return hashesCommand(ctx, "pause <hash> ...", "Pause torrents",
		func(callCtx context.Context, session *deluge.Session, hashes []rpc.InfoHash) error {
			return session.PauseTorrents(callCtx, hashes)
		})
}

func newResumeCommand(ctx *commandContext) *cobra.Command {
	return hashesCommand(ctx, "resume <hash> ...", "Resume paused torrents",
		func(callCtx context.Context, session *deluge.Session, hashes []rpc.InfoHash) error {
			return session.ResumeTorrents(callCtx, hashes)
		})
}

func newRecheckCommand(ctx *commandContext) *cobra.Command {
	return hashesCommand(ctx, "recheck <hash> ...", "Recheck torrent data against metadata",
		func(callCtx context.Context, session *deluge.Session, hashes []rpc.InfoHash) error {
			return session.ForceRecheck(callCtx, hashes)
		})
}

func newReannounceCommand(ctx *commandContext) *cobra.Command {
	return hashesCommand(ctx, "reannounce <hash> ...", "Reannounce torrents to their trackers",
		func(callCtx context.Context, session *deluge.Session, hashes []rpc.InfoHash) error {
			return session.ForceReannounce(callCtx, hashes)
		})
}

func hashesCommand(ctx *commandContext, use, short string, run func(context.Context, *deluge.Session, []rpc.InfoHash) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashes, err := parseHashArgs(args)
			if err != nil {
				return err
			}
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				if err := run(callCtx, session, hashes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok (%d torrents)\n", len(hashes))
				return nil
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var dataFlag bool

	cmd := &cobra.Command{
		Use:     "rm <hash> ...",
		Aliases: []string{"remove"},
		Short:   "Remove torrents from the session",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashes, err := parseHashArgs(args)
			if err != nil {
				return err
			}
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				if len(hashes) == 1 {
					removed, err := session.RemoveTorrent(callCtx, hashes[0], dataFlag)
					if err != nil {
						return fmt.Errorf("remove %s: %w", hashes[0], err)
					}
					if !removed {
						return fmt.Errorf("remove %s: daemon refused", hashes[0])
					}
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", hashes[0])
					return nil
				}

				failures, err := session.RemoveTorrents(callCtx, hashes, dataFlag)
				if err != nil {
					return err
				}
				for _, hash := range hashes {
					if reason, failed := failures[hash]; failed {
						fmt.Fprintf(cmd.OutOrStdout(), "failed  %s: %s\n", hash, reason)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", hash)
					}
				}
				if len(failures) > 0 {
					return fmt.Errorf("%d of %d torrents not removed", len(failures), len(hashes))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dataFlag, "data", false, "Also delete downloaded data on the daemon host")
	return cmd
}
