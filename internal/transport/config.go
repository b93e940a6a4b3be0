package transport

import (
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr string
	// Name labels logs and metrics, e.g. "message" or "file".
	Name   string
	Logger *logrus.Logger
	// IOTimeout bounds each read or write on an accepted connection.
	IOTimeout time.Duration
}

type SenderConfig struct {
	DialTimeout time.Duration
	IOTimeout   time.Duration
	Logger      *logrus.Logger
}

func DefaultConfig(addr string) Config {
	return Config{
		Addr:      addr,
		Name:      "message",
		IOTimeout: protocol.DefaultIOTimeout,
	}
}

func DefaultSenderConfig() SenderConfig {
	return SenderConfig{
		DialTimeout: protocol.DefaultDialTimeout,
		IOTimeout:   protocol.DefaultIOTimeout,
	}
}
