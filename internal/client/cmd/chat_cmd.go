package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rudransh-shrivastava/peer-chat/internal/chat"
	"github.com/rudransh-shrivastava/peer-chat/internal/conversation"
	"github.com/spf13/cobra"
)

var chatListen bool

var chatCmd = &cobra.Command{
	Use:   "chat peer",
	Short: "interactive conversation with a peer",
	Long: `prints the history with a peer and refreshes it on the poll interval. Every line
typed on stdin is sent as a message; /quit or end of input leaves.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		peer := args[0]
		out := cmd.OutOrStdout()

		ctx, stop := signalContext()
		defer stop()

		svc, err := newService(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "chatting with %s as %s, /quit to leave\n", peer, svc.Identity())

		var node *chat.Node
		if chatListen {
			node, err = newNode(out)
			if err != nil {
				return err
			}
			if err := node.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = node.Stop() }()
		}

		var mu sync.Mutex
		poller, err := svc.Poll(peer, cfg.PollInterval, func(records []conversation.Record) {
			mu.Lock()
			defer mu.Unlock()
			for _, r := range records {
				fmt.Fprintln(out, r)
			}
		})
		if err != nil {
			return err
		}

		pollCtx, cancelPoll := context.WithCancel(ctx)
		pollDone := make(chan struct{})
		go func() {
			defer close(pollDone)
			_ = poller.Run(pollCtx)
		}()
		defer func() {
			cancelPoll()
			<-pollDone
		}()

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok || strings.TrimSpace(line) == "/quit" {
					return nil
				}
				if strings.TrimSpace(line) == "" {
					continue
				}
				// Failures are already shown as notices; the session goes on.
				if _, err := svc.SendMessage(ctx, peer, line); err == nil {
					poller.Poll(ctx)
				}
			}
		}
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatListen, "listen", true, "also run the message and file listeners during the session")
}
