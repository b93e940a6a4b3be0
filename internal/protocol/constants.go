package protocol

import "time"

const (
	DefaultMessagePort = 5000
	DefaultFilePort    = 6000

	// DefaultMaxFileSize is the side-channel ceiling checked by senders before dialing.
	DefaultMaxFileSize = 15 * 1024 * 1024

	FrameHeaderSize    = 4
	MaxFrameSize       = 64 * 1024
	TransferBufferSize = 4096

	TimestampLayout = "2006-01-02 15:04:05"

	DefaultDialTimeout  = 5 * time.Second
	DefaultIOTimeout    = 10 * time.Second
	DefaultPollInterval = 3 * time.Second
)

type MessageType uint8

const (
	MsgChat      MessageType = 0x01
	MsgFileOffer MessageType = 0x02
)

func (t MessageType) String() string {
	switch t {
	case MsgChat:
		return "CHAT"
	case MsgFileOffer:
		return "FILE_OFFER"
	default:
		return "UNKNOWN"
	}
}
