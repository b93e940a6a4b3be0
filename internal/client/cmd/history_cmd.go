package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history peer",
	Short: "print the conversation with a peer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		records, err := svc.History(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}
