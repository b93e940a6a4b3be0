package chat

import (
	"context"
	"errors"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/filetransfer"
	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/rudransh-shrivastava/peer-chat/internal/transport"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type NodeOptions struct {
	MessageAddr string
	FileAddr    string
	DownloadDir string
	MaxFileSize int64
	IOTimeout   time.Duration
	Logger      *logrus.Logger

	OnMessage transport.MessageHandler
	OnFile    filetransfer.FileHandler
}

// Node is the inbound half of a peer: a message listener and a file receiver. Inbound
// messages are handed to OnMessage and are not written to the conversation log.
type Node struct {
	messages *transport.Listener
	files    *filetransfer.Receiver
	logger   *logrus.Logger
}

func NewNode(opts NodeOptions) (*Node, error) {
	if opts.OnMessage == nil {
		return nil, errors.New("OnMessage is required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewLogger()
	}
	ioTimeout := opts.IOTimeout
	if ioTimeout <= 0 {
		ioTimeout = protocol.DefaultIOTimeout
	}

	cfg := transport.DefaultConfig(opts.MessageAddr)
	cfg.Logger = log
	cfg.IOTimeout = ioTimeout

	n := &Node{
		messages: transport.NewMessageListener(cfg, opts.OnMessage),
		logger:   log,
	}

	if opts.FileAddr != "" {
		files, err := filetransfer.NewReceiver(filetransfer.ReceiverConfig{
			Addr:        opts.FileAddr,
			Dir:         opts.DownloadDir,
			MaxFileSize: opts.MaxFileSize,
			IOTimeout:   ioTimeout,
			Logger:      log,
		}, opts.OnFile)
		if err != nil {
			return nil, err
		}
		n.files = files
	}
	return n, nil
}

// Start binds both listeners. If either fails to bind, the other is stopped and the
// *transport.BindError is returned.
func (n *Node) Start(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return n.messages.Start(ctx)
	})
	if n.files != nil {
		g.Go(func() error {
			return n.files.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		_ = n.Stop()
		return err
	}
	n.logger.WithFields(logrus.Fields{
		"messages": n.MessageAddr(),
		"files":    n.FileAddr(),
	}).Info("Node started")
	return nil
}

// Stop shuts both listeners and waits for in-flight handlers.
func (n *Node) Stop() error {
	var g errgroup.Group
	g.Go(n.messages.Stop)
	if n.files != nil {
		g.Go(n.files.Stop)
	}
	return g.Wait()
}

func (n *Node) MessageAddr() string {
	return n.messages.Addr()
}

func (n *Node) FileAddr() string {
	if n.files == nil {
		return ""
	}
	return n.files.Addr()
}
