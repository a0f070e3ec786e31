package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and bootstrap client configuration",
	}

	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective client configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolvedPath, exists, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "config file: %s\n", resolvedPath)
			} else {
				fmt.Fprintf(out, "config file: %s (not found, defaults apply)\n", resolvedPath)
			}
			fmt.Fprintf(out, "daemon:      %s\n", cfg.Addr())
			user := cfg.Daemon.Username
			if user == "" {
				user = "(none)"
			}
			fmt.Fprintf(out, "username:    %s\n", user)
			fmt.Fprintf(out, "tls verify:  %s\n", yesNo(!cfg.Daemon.TLSSkipVerify))
			fmt.Fprintf(out, "timeout:     %ds\n", cfg.Daemon.TimeoutSeconds)
			fmt.Fprintf(out, "data dir:    %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "logging:     %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var forcePath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write an annotated sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := forcePath
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote sample config to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&forcePath, "path", "", "Write the sample to this path instead of the default")
	return cmd
}
