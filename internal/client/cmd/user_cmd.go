package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "manage the user directory",
}

var userAddCmd = &cobra.Command{
	Use:   "add identity host [port]",
	Short: "add a user or update their address",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		port := protocol.DefaultMessagePort
		if len(args) == 3 {
			p, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid port %q: %w", args[2], err)
			}
			port = p
		}

		dir, err := openDirectory()
		if err != nil {
			return err
		}
		if err := dir.Register(cmd.Context(), args[0], args[1], port); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s:%d\n", args[0], args[1], port)
		return nil
	},
}

var userRemoveCmd = &cobra.Command{
	Use:     "remove identity",
	Aliases: []string{"rm"},
	Short:   "remove a user",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openDirectory()
		if err != nil {
			return err
		}
		return dir.Remove(cmd.Context(), args[0])
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list known users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openDirectory()
		if err != nil {
			return err
		}
		users, err := dir.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "IDENTITY\tHOST\tPORT\tUPDATED")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", u.Username, u.Host, u.Port, time.Unix(u.UpdatedAt, 0).Format(protocol.TimestampLayout))
		}
		return w.Flush()
	},
}

var userFindCmd = &cobra.Command{
	Use:   "find identity",
	Short: "show the address of one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := openDirectory()
		if err != nil {
			return err
		}
		addr, err := dir.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), addr)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userAddCmd, userRemoveCmd, userListCmd, userFindCmd)
}
