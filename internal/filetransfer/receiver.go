package filetransfer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/rudransh-shrivastava/peer-chat/internal/transport"
	"github.com/sirupsen/logrus"
)

type ReceiverConfig struct {
	Addr        string
	Dir         string
	MaxFileSize int64
	IOTimeout   time.Duration
	Logger      *logrus.Logger
}

// ReceivedFile describes a file fully written and verified under the receiver's Dir.
type ReceivedFile struct {
	Offer  protocol.FileOffer
	Path   string
	Remote string
}

type FileHandler func(ctx context.Context, file ReceivedFile)

type Receiver struct {
	listener    *transport.Listener
	dir         string
	maxFileSize int64
	handler     FileHandler
	logger      *logrus.Logger
}

func NewReceiver(cfg ReceiverConfig, handler FileHandler) (*Receiver, error) {
	if cfg.Dir == "" {
		return nil, errors.New("download directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger()
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = protocol.DefaultMaxFileSize
	}

	r := &Receiver{
		dir:         cfg.Dir,
		maxFileSize: cfg.MaxFileSize,
		handler:     handler,
		logger:      log,
	}

	lcfg := transport.DefaultConfig(cfg.Addr)
	lcfg.Name = "file"
	lcfg.Logger = log
	if cfg.IOTimeout > 0 {
		lcfg.IOTimeout = cfg.IOTimeout
	}
	r.listener = transport.NewListener(lcfg, r.receive)
	return r, nil
}

func (r *Receiver) Start(ctx context.Context) error {
	return r.listener.Start(ctx)
}

func (r *Receiver) Stop() error {
	return r.listener.Stop()
}

func (r *Receiver) Addr() string {
	return r.listener.Addr()
}

func (r *Receiver) receive(ctx context.Context, peer *transport.Peer) error {
	remote := peer.RemoteAddr()

	msg, err := peer.Receive()
	if err != nil {
		return &transport.DecodeError{Remote: remote, Err: err}
	}
	offer, ok := msg.(*protocol.FileOffer)
	if !ok {
		return &transport.DecodeError{
			Remote: remote,
			Err:    fmt.Errorf("expected %s, got %s", protocol.MsgFileOffer, msg.Type()),
		}
	}
	if offer.Size > uint64(r.maxFileSize) {
		return &transport.DecodeError{
			Remote: remote,
			Err:    fmt.Errorf("%w: offered %d bytes, limit %d", ErrFileTooLarge, offer.Size, r.maxFileSize),
		}
	}

	name, err := SanitizeName(offer.Name)
	if err != nil {
		return &transport.DecodeError{Remote: remote, Err: err}
	}

	f, path, err := createUnique(r.dir, name)
	if err != nil {
		return fmt.Errorf("storing %q: %w", name, err)
	}

	hash := sha256.New()
	buf := make([]byte, protocol.TransferBufferSize)
	n, copyErr := io.CopyBuffer(io.MultiWriter(f, hash), io.LimitReader(peer, int64(offer.Size)), buf)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		err = &transport.DecodeError{Remote: remote, Err: copyErr}
	case n != int64(offer.Size):
		err = &transport.DecodeError{
			Remote: remote,
			Err:    fmt.Errorf("%w: got %d of %d bytes", io.ErrUnexpectedEOF, n, offer.Size),
		}
	case offer.Checksum != "" && fmt.Sprintf("%x", hash.Sum(nil)) != offer.Checksum:
		err = &transport.DecodeError{Remote: remote, Err: ErrChecksumMismatch}
	case closeErr != nil:
		err = fmt.Errorf("storing %q: %w", name, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}

	metrics.FilesReceived.Inc()
	metrics.FileBytesTransferred.WithLabelValues("in").Add(float64(n))
	r.logger.WithFields(logrus.Fields{
		"from": offer.Sender,
		"file": path,
		"size": n,
	}).Info("File received")

	if r.handler != nil {
		r.handler(ctx, ReceivedFile{Offer: *offer, Path: path, Remote: remote})
	}
	return nil
}
