package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quepf/deluge-rpc/internal/hostlist"
)

func newHostsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "Manage saved daemon endpoints",
	}

	cmd.AddCommand(newHostsListCommand(ctx))
	cmd.AddCommand(newHostsAddCommand(ctx))
	cmd.AddCommand(newHostsRemoveCommand(ctx))
	return cmd
}

func newHostsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved daemon endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			list, err := hostlist.Load(cfg.HostlistPath())
			if err != nil {
				return err
			}
			hosts := list.Hosts()
			if len(hosts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved hosts; add one with 'delugectl hosts add'")
				return nil
			}
			rows := make([][]string, 0, len(hosts))
			for _, host := range hosts {
				user := host.Username
				if user == "" {
					user = "-"
				}
				rows = append(rows, []string{host.Name, host.Addr(), user, host.ID})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Address", "User", "ID"}, rows, nil))
			return nil
		},
	}
}

func newHostsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		nameFlag     string
		usernameFlag string
		passwordFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <host> <port>",
		Short: "Save a daemon endpoint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			port, err := strconv.Atoi(args[1])
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("invalid port %q", args[1])
			}
			list, err := hostlist.Load(cfg.HostlistPath())
			if err != nil {
				return err
			}
			id, err := list.Add(hostlist.Host{
				Name:     nameFlag,
				Host:     args[0],
				Port:     port,
				Username: usernameFlag,
				Password: passwordFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s:%d (%s)\n", args[0], port, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Friendly name for the endpoint")
	cmd.Flags().StringVar(&usernameFlag, "username", "", "Daemon account username")
	cmd.Flags().StringVar(&passwordFlag, "password", "", "Daemon account password")
	return cmd
}

func newHostsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name-or-id>",
		Aliases: []string{"remove"},
		Short:   "Forget a saved daemon endpoint",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			list, err := hostlist.Load(cfg.HostlistPath())
			if err != nil {
				return err
			}
			if err := list.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}
