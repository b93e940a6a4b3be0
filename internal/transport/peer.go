package transport

import (
	"net"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
)

// Peer is one short-lived connection. Every Read and Write pushes the deadline forward
// by the configured timeout, so a stalled peer fails instead of blocking forever.
type Peer struct {
	codec   *protocol.Codec
	conn    net.Conn
	timeout time.Duration
}

func NewPeer(conn net.Conn, timeout time.Duration) *Peer {
	return &Peer{
		codec:   protocol.NewCodec(),
		conn:    conn,
		timeout: timeout,
	}
}

func (p *Peer) Close() error {
	return p.conn.Close()
}

func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}

func (p *Peer) Read(b []byte) (int, error) {
	if p.timeout > 0 {
		if err := p.conn.SetReadDeadline(time.Now().Add(p.timeout)); err != nil {
			return 0, err
		}
	}
	return p.conn.Read(b)
}

func (p *Peer) Write(b []byte) (int, error) {
	if p.timeout > 0 {
		if err := p.conn.SetWriteDeadline(time.Now().Add(p.timeout)); err != nil {
			return 0, err
		}
	}
	return p.conn.Write(b)
}

func (p *Peer) Receive() (protocol.Message, error) {
	return p.codec.Decode(p)
}

func (p *Peer) Send(msg protocol.Message) error {
	return p.codec.Encode(p, msg)
}

// CloseWrite half-closes a TCP connection so the remote reader sees end of stream.
func (p *Peer) CloseWrite() error {
	if tc, ok := p.conn.(*net.TCPConn); ok {
		return tc.CloseWrite()
	}
	return nil
}
