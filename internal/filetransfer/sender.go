// Package filetransfer moves raw file bytes on a port separate from chat messages.
//
// Wire form: one protocol.FileOffer frame, then exactly Offer.Size raw bytes, then the
// sender closes the connection.
package filetransfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/rudransh-shrivastava/peer-chat/internal/transport"
	"github.com/sirupsen/logrus"
)

type SenderConfig struct {
	MaxFileSize int64
	Transport   transport.SenderConfig
	Logger      *logrus.Logger
}

type Sender struct {
	transport   *transport.Sender
	maxFileSize int64
	logger      *logrus.Logger
}

func NewSender(cfg SenderConfig) *Sender {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger()
	}
	if cfg.Transport.Logger == nil {
		cfg.Transport.Logger = log
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = protocol.DefaultMaxFileSize
	}

	return &Sender{
		transport:   transport.NewSender(cfg.Transport),
		maxFileSize: cfg.MaxFileSize,
		logger:      log,
	}
}

// SendFile streams path to addr. Files above the ceiling fail with ErrFileTooLarge before
// dialing. progress, if not nil, sees every byte written to the socket.
func (s *Sender) SendFile(ctx context.Context, addr, from, path string, progress io.Writer) (*protocol.FileOffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &transport.DeliveryError{Addr: addr, Op: "open", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &transport.DeliveryError{Addr: addr, Op: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, &transport.DeliveryError{Addr: addr, Op: "stat", Err: fmt.Errorf("%s is a directory", path)}
	}
	if err := CheckSize(info.Size(), s.maxFileSize); err != nil {
		return nil, err
	}

	checksum, err := HashFile(f)
	if err != nil {
		return nil, &transport.DeliveryError{Addr: addr, Op: "read", Err: err}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &transport.DeliveryError{Addr: addr, Op: "read", Err: err}
	}

	offer := &protocol.FileOffer{
		ID:       uuid.NewString(),
		Sender:   from,
		Name:     filepath.Base(path),
		Size:     uint64(info.Size()),
		Checksum: checksum,
	}

	peer, err := s.transport.Dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = peer.Close()
	}()

	if err := peer.Send(offer); err != nil {
		metrics.DeliveryFailures.WithLabelValues("write").Inc()
		return nil, &transport.DeliveryError{Addr: addr, Op: "write", Err: err}
	}

	var dst io.Writer = peer
	if progress != nil {
		dst = io.MultiWriter(peer, progress)
	}

	buf := make([]byte, protocol.TransferBufferSize)
	n, err := io.CopyBuffer(dst, io.LimitReader(f, info.Size()), buf)
	if err == nil && n != info.Size() {
		err = fmt.Errorf("file shrank during transfer: sent %d of %d bytes", n, info.Size())
	}
	if err != nil {
		metrics.DeliveryFailures.WithLabelValues("write").Inc()
		return nil, &transport.DeliveryError{Addr: addr, Op: "write", Err: err}
	}
	if err := peer.CloseWrite(); err != nil {
		return nil, &transport.DeliveryError{Addr: addr, Op: "write", Err: err}
	}

	metrics.FilesSent.Inc()
	metrics.FileBytesTransferred.WithLabelValues("out").Add(float64(n))
	s.logger.WithFields(logrus.Fields{
		"addr": addr,
		"file": offer.Name,
		"size": n,
	}).Info("File sent")
	return offer, nil
}
