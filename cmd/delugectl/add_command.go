package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/catalog"
	"github.com/quepf/deluge-rpc/internal/deluge"
	"github.com/quepf/deluge-rpc/internal/rpc"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var pausedFlag bool
	var downloadDirFlag string

	cmd := &cobra.Command{
		Use:   "add <torrent-file|magnet-uri|url> ...",
		Short: "Add torrents from files, magnet URIs, or URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &deluge.TorrentOptions{}
			if pausedFlag {
				opts.AddPaused = &pausedFlag
			}
			if dir := strings.TrimSpace(downloadDirFlag); dir != "" {
				opts.DownloadLocation = &dir
			}

			return ctx.withSession(func(callCtx context.Context, session *deluge.Session) error {
				return ctx.withCatalog(func(store *catalog.Store) error {
					for _, source := range args {
						hash, name, err := addOne(callCtx, session, source, opts)
						if err != nil {
							return fmt.Errorf("add %s: %w", source, err)
						}
						if hash == nil {
							fmt.Fprintf(cmd.OutOrStdout(), "%s: declined by daemon (duplicate?)\n", source)
							continue
						}
						if _, err := store.Record(callCtx, catalog.Entry{
							InfoHash: hash.String(),
							Name:     name,
							Source:   source,
						}); err != nil {
							return err
						}
						fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", hash)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().BoolVar(&pausedFlag, "paused", false, "Add torrents paused")
	cmd.Flags().StringVar(&downloadDirFlag, "download-dir", "", "Download location on the daemon host")
	return cmd
}

func addOne(callCtx context.Context, session *deluge.Session, source string, opts *deluge.TorrentOptions) (*rpc.InfoHash, string, error) {
	switch {
	case strings.HasPrefix(source, "magnet:"):
		hash, err := session.AddTorrentMagnet(callCtx, source, opts)
		if err != nil {
			return nil, "", err
		}
		return &hash, "", nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		hash, err := session.AddTorrentURL(callCtx, source, opts, nil)
		return hash, "", err
	default:
		dump, err := os.ReadFile(source)
		if err != nil {
			return nil, "", err
		}
		name := filepath.Base(source)
		hash, err := session.AddTorrentFile(callCtx, name, dump, opts)
		return hash, name, err
	}
}
