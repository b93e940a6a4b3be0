package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/sirupsen/logrus"
)

// Reader is the read side of a Log.
type Reader interface {
	Read(ctx context.Context, key Key) ([]Record, error)
}

type PollerConfig struct {
	Key      Key
	Interval time.Duration
	Logger   *logrus.Logger

	// OnRecords receives records appended since the previous tick, oldest first.
	OnRecords func([]Record)
	OnError   func(error)
}

// Poller re-reads a conversation on a fixed interval. Staleness is bounded by Interval.
type Poller struct {
	cfg    PollerConfig
	reader Reader
	logger *logrus.Logger

	mu   sync.Mutex
	seen int
}

func NewPoller(reader Reader, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = protocol.DefaultPollInterval
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger()
	}

	return &Poller{
		cfg:    cfg,
		reader: reader,
		logger: log,
	}
}

// Run polls until ctx is done. The first read happens immediately.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		p.Poll(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll performs a single refresh and returns the number of new records delivered. It may
// be called while Run is active to refresh early.
func (p *Poller) Poll(ctx context.Context) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	records, err := p.reader.Read(ctx, p.cfg.Key)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		p.logger.WithError(err).WithField("key", p.cfg.Key.String()).Warn("Failed to refresh conversation")
		if p.cfg.OnError != nil {
			p.cfg.OnError(err)
		}
		return 0
	}

	// The log only grows, so anything past the last seen count is new.
	if len(records) <= p.seen {
		return 0
	}
	fresh := records[p.seen:]
	p.seen = len(records)

	if p.cfg.OnRecords != nil {
		p.cfg.OnRecords(fresh)
	}
	return len(fresh)
}
