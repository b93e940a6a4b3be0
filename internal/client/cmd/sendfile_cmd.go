package cmd

import (
	"fmt"
	"os"

	"github.com/rudransh-shrivastava/peer-chat/internal/filetransfer"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var sendFileCmd = &cobra.Command{
	Use:   "sendfile peer path/to/file",
	Short: "send a file",
	Long:  `streams a file to the peer's file port, the peer must be running listen`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		peer, path := args[0], args[1]

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := filetransfer.CheckSize(info.Size(), cfg.MaxFileSize); err != nil {
			return err
		}

		svc, err := newService(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		bar := progressbar.DefaultBytes(info.Size(), fmt.Sprintf("sending %s", info.Name()))
		offer, err := svc.SendFile(cmd.Context(), peer, path, bar)
		if err != nil {
			return err
		}
		_ = bar.Finish()

		fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s (sha256 %s)\n", offer.Name, peer, offer.Checksum)
		return nil
	},
}
