package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/catalog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limitFlag int
		hashFlag  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show torrents added by this client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				var (
					entries []catalog.Entry
					err     error
				)
				if hashFlag != "" {
					entries, err = store.ByHash(cmd.Context(), hashFlag)
				} else {
					entries, err = store.Recent(cmd.Context(), limitFlag)
				}
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no recorded additions")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					name := entry.Name
					if name == "" {
						name = "-"
					}
					rows = append(rows, []string{
						strconv.FormatInt(entry.ID, 10),
						entry.AddedAt.Local().Format("2006-01-02 15:04"),
						shortEntryHash(entry.InfoHash),
						name,
						entry.Source,
					})
				}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Added", "ID", "Name", "Source"}, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 50, "Maximum number of additions to show")
	cmd.Flags().StringVar(&hashFlag, "hash", "", "Show only additions of this info hash")
	return cmd
}

func shortEntryHash(infoHash string) string {
	if len(infoHash) > 8 {
		return infoHash[:8]
	}
	return infoHash
}
