// Package chat ties the directory, transport and conversation log together for one local
// identity.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/conversation"
	"github.com/rudransh-shrivastava/peer-chat/internal/directory"
	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/rudransh-shrivastava/peer-chat/internal/transport"
	"github.com/sirupsen/logrus"
)

type MessageSender interface {
	Send(ctx context.Context, addr string, env *protocol.Envelope) error
}

type FileSender interface {
	SendFile(ctx context.Context, addr, from, path string, progress io.Writer) (*protocol.FileOffer, error)
}

type ConversationLog interface {
	Append(ctx context.Context, key conversation.Key, record conversation.Record) error
	Read(ctx context.Context, key conversation.Key) ([]conversation.Record, error)
	Keys(ctx context.Context) ([]conversation.Key, error)
}

type Options struct {
	Identity  string
	Directory directory.Resolver
	Log       ConversationLog
	Sender    MessageSender
	Files     FileSender
	// FilePort is the side-channel port peers listen on; the host comes from the directory.
	FilePort int
	Logger   *logrus.Logger
	Now      func() time.Time
	OnNotice func(Notice)
}

type Service struct {
	identity  string
	directory directory.Resolver
	log       ConversationLog
	sender    MessageSender
	files     FileSender
	filePort  int
	logger    *logrus.Logger
	now       func() time.Time
	onNotice  func(Notice)
}

func NewService(opts Options) (*Service, error) {
	if _, err := conversation.CanonicalKey(opts.Identity, opts.Identity); err != nil {
		return nil, err
	}
	if opts.Directory == nil || opts.Log == nil || opts.Sender == nil {
		return nil, errors.New("directory, log and sender are required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	filePort := opts.FilePort
	if filePort == 0 {
		filePort = protocol.DefaultFilePort
	}

	return &Service{
		identity:  opts.Identity,
		directory: opts.Directory,
		log:       opts.Log,
		sender:    opts.Sender,
		files:     opts.Files,
		filePort:  filePort,
		logger:    log,
		now:       now,
		onNotice:  opts.OnNotice,
	}, nil
}

func (s *Service) Identity() string {
	return s.identity
}

// SendMessage hands body to the peer and records it under the pair's key whatever the
// delivery outcome, since both sides read history from the log. A delivery failure is
// still returned as *transport.DeliveryError; if the append fails as well, both errors
// are joined.
func (s *Service) SendMessage(ctx context.Context, to, body string) (conversation.Record, error) {
	key, err := conversation.CanonicalKey(s.identity, to)
	if err != nil {
		return conversation.Record{}, err
	}

	addr, err := s.resolve(ctx, to)
	if err != nil {
		return conversation.Record{}, err
	}

	now := s.now()
	env := protocol.NewEnvelope(s.identity, to, body, now)
	record := conversation.NewRecord(s.identity, body, now)

	sendErr := s.sender.Send(ctx, addr.String(), env)
	if sendErr != nil {
		s.notify(NoticeUndelivered, to, sendErr)
	}

	appendErr := s.log.Append(ctx, key, record)
	if appendErr != nil {
		s.notify(NoticeNotLogged, to, appendErr)
	}
	return record, errors.Join(sendErr, appendErr)
}

// SendFile streams path to the peer's file port on the host the directory has for them.
func (s *Service) SendFile(ctx context.Context, to, path string, progress io.Writer) (*protocol.FileOffer, error) {
	if s.files == nil {
		return nil, errors.New("file transfer is not configured")
	}
	if _, err := conversation.CanonicalKey(s.identity, to); err != nil {
		return nil, err
	}

	addr, err := s.resolve(ctx, to)
	if err != nil {
		return nil, err
	}

	offer, err := s.files.SendFile(ctx, addr.WithPort(s.filePort).String(), s.identity, path, progress)
	if err != nil {
		s.notify(NoticeFileFailed, to, err)
		return nil, err
	}
	return offer, nil
}

func (s *Service) History(ctx context.Context, peer string) ([]conversation.Record, error) {
	key, err := conversation.CanonicalKey(s.identity, peer)
	if err != nil {
		return nil, err
	}
	return s.log.Read(ctx, key)
}

// Conversations lists the peers this identity has history with, in key order.
func (s *Service) Conversations(ctx context.Context) ([]string, error) {
	keys, err := s.log.Keys(ctx)
	if err != nil {
		return nil, err
	}

	peers := []string{}
	for _, key := range keys {
		first, second := key.Participants()
		if first != s.identity && second != s.identity {
			continue
		}
		peers = append(peers, key.Peer(s.identity))
	}
	return peers, nil
}

// Poll returns a poller over the conversation with peer. fn receives only records that
// appeared since the previous tick.
func (s *Service) Poll(peer string, interval time.Duration, fn func([]conversation.Record)) (*conversation.Poller, error) {
	key, err := conversation.CanonicalKey(s.identity, peer)
	if err != nil {
		return nil, err
	}
	return conversation.NewPoller(s.log, conversation.PollerConfig{
		Key:       key,
		Interval:  interval,
		Logger:    s.logger,
		OnRecords: fn,
		OnError: func(err error) {
			s.notify(NoticeHistoryUnavailable, peer, err)
		},
	}), nil
}

func (s *Service) resolve(ctx context.Context, peer string) (directory.Address, error) {
	addr, err := s.directory.Resolve(ctx, peer)
	if err == nil {
		return addr, nil
	}

	metrics.DeliveryFailures.WithLabelValues("resolve").Inc()
	if errors.Is(err, directory.ErrNotFound) {
		err = fmt.Errorf("%q: %w", peer, err)
		s.notify(NoticeUnknownPeer, peer, err)
		return directory.Address{}, err
	}
	err = &transport.DeliveryError{Addr: peer, Op: "resolve", Err: err}
	s.notify(NoticeUndelivered, peer, err)
	return directory.Address{}, err
}

func (s *Service) notify(kind NoticeKind, peer string, err error) {
	s.logger.WithError(err).WithField("peer", peer).Warn(kind.String())
	if s.onNotice != nil {
		s.onNotice(Notice{Kind: kind, Peer: peer, Err: err})
	}
}
