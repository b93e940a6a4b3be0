package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send peer message...",
	Short: "send one message",
	Long:  `sends a message to a peer from the user directory and records it in the local history`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.DialTimeout+cfg.IOTimeout)
		defer cancel()

		record, err := svc.SendMessage(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), record)
		return nil
	},
}
