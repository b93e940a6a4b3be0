package transport

import (
	"context"
	"fmt"

	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
)

// MessageHandler receives each decoded envelope. It runs on the connection's goroutine.
type MessageHandler func(ctx context.Context, env *protocol.Envelope)

// NewMessageListener decodes exactly one envelope per connection and hands it to handler.
func NewMessageListener(cfg Config, handler MessageHandler) *Listener {
	if cfg.Name == "" {
		cfg.Name = "message"
	}

	return NewListener(cfg, func(ctx context.Context, peer *Peer) error {
		msg, err := peer.Receive()
		if err != nil {
			return &DecodeError{Remote: peer.RemoteAddr(), Err: err}
		}

		env, ok := msg.(*protocol.Envelope)
		if !ok {
			return &DecodeError{
				Remote: peer.RemoteAddr(),
				Err:    fmt.Errorf("expected %s, got %s", protocol.MsgChat, msg.Type()),
			}
		}

		metrics.MessagesReceived.Inc()
		handler(ctx, env)
		return nil
	})
}
