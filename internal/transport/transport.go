// Package transport carries one payload per TCP connection between peers.
package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/sirupsen/logrus"
)

// ConnHandler owns an accepted connection until it returns; the listener closes it
// afterwards. A returned error is logged and never stops the listener.
type ConnHandler func(ctx context.Context, peer *Peer) error

type Listener struct {
	config  Config
	logger  *logrus.Entry
	handler ConnHandler

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewListener(cfg Config, handler ConnHandler) *Listener {
	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger()
	}
	if cfg.Name == "" {
		cfg.Name = "listener"
	}

	return &Listener{
		config:  cfg,
		logger:  log.WithField("listener", cfg.Name),
		handler: handler,
	}
}

// Start binds the configured address and accepts in the background. A bind failure is
// returned as *BindError.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listener != nil {
		return ErrListenerStarted
	}

	ln, err := net.Listen("tcp", l.config.Addr)
	if err != nil {
		return &BindError{Addr: l.config.Addr, Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	l.listener = ln
	l.cancel = cancel

	l.wg.Add(1)
	go l.acceptLoop(ctx, ln)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	l.logger.WithField("addr", ln.Addr().String()).Info("Listener started")
	return nil
}

// Addr reports the bound address, or "" before Start.
func (l *Listener) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.listener == nil {
		return ""
	}
	return l.listener.Addr().String()
}

// Stop closes the socket and waits for in-flight handlers. No handler runs after Stop
// returns.
func (l *Listener) Stop() error {
	l.mu.Lock()
	ln := l.listener
	cancel := l.cancel
	l.mu.Unlock()

	if ln == nil {
		return nil
	}

	cancel()
	err := ln.Close()
	l.wg.Wait()

	l.logger.Info("Listener stopped")
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (l *Listener) acceptLoop(ctx context.Context, ln net.Listener) {
	defer l.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			l.logger.WithError(err).Error("Failed to accept connection")
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if ctx.Err() != nil {
			_ = conn.Close()
			return
		}

		l.wg.Add(1)
		go l.handleConn(ctx, conn)
	}
}

func (l *Listener) handleConn(ctx context.Context, conn net.Conn) {
	defer l.wg.Done()

	peer := NewPeer(conn, l.config.IOTimeout)
	remote := peer.RemoteAddr()
	defer func() {
		_ = peer.Close()
	}()

	l.logger.WithField("peer", remote).Debug("Connection accepted")

	if err := l.handler(ctx, peer); err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			metrics.DecodeFailures.WithLabelValues(l.config.Name).Inc()
		}
		l.logger.WithError(err).WithField("peer", remote).Warn("Dropping connection")
	}
}
