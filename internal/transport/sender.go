package transport

import (
	"context"
	"net"

	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/sirupsen/logrus"
)

// Sender opens a fresh connection per payload. It keeps no per-call state and is safe
// for concurrent use.
type Sender struct {
	codec  *protocol.Codec
	config SenderConfig
	logger *logrus.Logger
}

func NewSender(cfg SenderConfig) *Sender {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger()
	}

	return &Sender{
		codec:  protocol.NewCodec(),
		config: cfg,
		logger: log,
	}
}

// Dial opens a connection to addr. Failures are *DeliveryError with Op "dial".
func (s *Sender) Dial(ctx context.Context, addr string) (*Peer, error) {
	dialer := net.Dialer{Timeout: s.config.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		metrics.DeliveryFailures.WithLabelValues("dial").Inc()
		return nil, &DeliveryError{Addr: addr, Op: "dial", Err: err}
	}
	return NewPeer(conn, s.config.IOTimeout), nil
}

// Send delivers env to addr and closes the connection. Success means the frame was
// written to the socket, not that the peer read it.
func (s *Sender) Send(ctx context.Context, addr string, env *protocol.Envelope) error {
	frame, err := s.codec.EncodeToBytes(env)
	if err != nil {
		metrics.DeliveryFailures.WithLabelValues("encode").Inc()
		return &DeliveryError{Addr: addr, Op: "encode", Err: err}
	}

	peer, err := s.Dial(ctx, addr)
	if err != nil {
		s.logger.WithError(err).WithField("addr", addr).Warn("Failed to connect to peer")
		return err
	}
	defer func() {
		_ = peer.Close()
	}()

	if _, err := peer.Write(frame); err != nil {
		metrics.DeliveryFailures.WithLabelValues("write").Inc()
		s.logger.WithError(err).WithField("addr", addr).Warn("Failed to send message")
		return &DeliveryError{Addr: addr, Op: "write", Err: err}
	}

	metrics.MessagesSent.Inc()
	s.logger.WithFields(logrus.Fields{
		"addr": addr,
		"id":   env.ID,
	}).Debug("Message sent")
	return nil
}
