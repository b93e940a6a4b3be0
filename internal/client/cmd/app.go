package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rudransh-shrivastava/peer-chat/internal/chat"
	"github.com/rudransh-shrivastava/peer-chat/internal/conversation"
	"github.com/rudransh-shrivastava/peer-chat/internal/directory"
	"github.com/rudransh-shrivastava/peer-chat/internal/filetransfer"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/rudransh-shrivastava/peer-chat/internal/transport"
)

func openDirectory() (*directory.Store, error) {
	db, err := directory.Open(cfg.DirectoryPath())
	if err != nil {
		return nil, err
	}
	return directory.NewStore(db), nil
}

func openLog() (*conversation.Log, error) {
	return conversation.NewLog(conversation.Config{
		Dir:    cfg.ConversationDir(),
		Logger: log,
	})
}

// newService builds the outbound side for the configured identity. Notices are printed
// to errOut.
func newService(errOut io.Writer) (*chat.Service, error) {
	dir, err := openDirectory()
	if err != nil {
		return nil, err
	}
	convLog, err := openLog()
	if err != nil {
		return nil, err
	}

	senderCfg := transport.SenderConfig{
		DialTimeout: cfg.DialTimeout,
		IOTimeout:   cfg.IOTimeout,
		Logger:      log,
	}

	return chat.NewService(chat.Options{
		Identity:  cfg.Identity,
		Directory: dir,
		Log:       convLog,
		Sender:    transport.NewSender(senderCfg),
		Files: filetransfer.NewSender(filetransfer.SenderConfig{
			MaxFileSize: cfg.MaxFileSize,
			Transport:   senderCfg,
			Logger:      log,
		}),
		FilePort: cfg.FilePort,
		Logger:   log,
		OnNotice: func(n chat.Notice) {
			fmt.Fprintf(errOut, "! %s\n", n)
		},
	})
}

func newNode(out io.Writer) (*chat.Node, error) {
	return chat.NewNode(chat.NodeOptions{
		MessageAddr: cfg.MessageAddr(),
		FileAddr:    cfg.FileAddr(),
		DownloadDir: cfg.DownloadDir(),
		MaxFileSize: cfg.MaxFileSize,
		IOTimeout:   cfg.IOTimeout,
		Logger:      log,
		OnMessage: func(_ context.Context, env *protocol.Envelope) {
			fmt.Fprintln(out, conversation.RecordFromEnvelope(env))
		},
		OnFile: func(_ context.Context, f filetransfer.ReceivedFile) {
			fmt.Fprintf(out, "%s sent %s (%d bytes) -> %s\n", f.Offer.Sender, f.Offer.Name, f.Offer.Size, f.Path)
		},
	})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
