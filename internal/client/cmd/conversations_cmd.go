package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "list the peers you have history with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		peers, err := svc.Conversations(cmd.Context())
		if err != nil {
			return err
		}
		for _, peer := range peers {
			fmt.Fprintln(cmd.OutOrStdout(), peer)
		}
		return nil
	},
}
