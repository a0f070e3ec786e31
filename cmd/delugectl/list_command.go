package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/deluge"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List torrents in the session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				var filter map[string]any
				if state := strings.TrimSpace(stateFlag); state != "" {
					filter = map[string]any{"state": state}
				}
				byHash, err := session.GetTorrentsStatus(callCtx, filter)
				if err != nil {
					return err
				}
				if len(byHash) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no torrents")
					return nil
				}

				rows := make([][]string, 0, len(byHash))
				for _, status := range sortedStatuses(byHash) {
					rows = append(rows, []string{
						shortHash(status.Hash),
						status.Name,
						status.State,
						formatProgress(status.Progress),
						formatBytes(status.TotalSize),
						formatRate(status.DownloadRate),
						formatRate(status.UploadRate),
						formatETA(status.ETA),
					})
				}
				headers := []string{"ID", "Name", "State", "Done", "Size", "Down", "Up", "ETA"}
				aligns := []columnAlignment{
					alignLeft, alignLeft, alignLeft, alignRight,
					alignRight, alignRight, alignRight, alignRight,
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stateFlag, "state", "", "Only show torrents in this state (e.g. Downloading, Seeding, Paused)")
	return cmd
}

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <hash>",
		Short: "Show detailed status for one torrent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashes, err := parseHashArgs(args)
			if err != nil {
				return err
			}
			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				status, err := session.GetTorrentStatus(callCtx, hashes[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Name:      %s\n", status.Name)
				fmt.Fprintf(out, "Hash:      %s\n", status.Hash)
				fmt.Fprintf(out, "State:     %s\n", status.State)
				fmt.Fprintf(out, "Progress:  %s of %s (%s done)\n",
					formatProgress(status.Progress), formatBytes(status.TotalSize), formatBytes(status.TotalDone))
				fmt.Fprintf(out, "Rates:     down %s, up %s\n",
					formatRate(status.DownloadRate), formatRate(status.UploadRate))
				fmt.Fprintf(out, "Peers:     %d seeds, %d peers\n", status.Seeds, status.Peers)
				fmt.Fprintf(out, "Ratio:     %.3f\n", status.Ratio)
				fmt.Fprintf(out, "ETA:       %s\n", formatETA(status.ETA))
				fmt.Fprintf(out, "Save path: %s\n", status.SavePath)
				fmt.Fprintf(out, "Finished:  %s\n", yesNo(status.Finished))
				return nil
			})
		},
	}
}
