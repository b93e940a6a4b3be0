package protocol

import (
	"time"

	"github.com/google/uuid"
	"github.com/rudransh-shrivastava/peer-chat/internal/protocol/pb"
	"google.golang.org/protobuf/proto"
)

// Message is a frame body. Bodies travel as the protobuf messages in package pb, whose
// string fields must be valid UTF-8 in both directions.
type Message interface {
	Type() MessageType
	marshal() ([]byte, error)
	unmarshal(b []byte) error
}

// Envelope is the structured chat payload sent on the message port.
type Envelope struct {
	ID        string
	Sender    string
	Recipient string
	Body      string
	Timestamp string
}

func NewEnvelope(sender, recipient, body string, now time.Time) *Envelope {
	return &Envelope{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Body:      body,
		Timestamp: now.Format(TimestampLayout),
	}
}

func (*Envelope) Type() MessageType { return MsgChat }

func (e *Envelope) marshal() ([]byte, error) {
	return proto.Marshal(&pb.Envelope{
		Id:        e.ID,
		Sender:    e.Sender,
		Recipient: e.Recipient,
		Body:      e.Body,
		Timestamp: e.Timestamp,
	})
}

func (e *Envelope) unmarshal(b []byte) error {
	var m pb.Envelope
	if err := proto.Unmarshal(b, &m); err != nil {
		return err
	}
	*e = Envelope{
		ID:        m.GetId(),
		Sender:    m.GetSender(),
		Recipient: m.GetRecipient(),
		Body:      m.GetBody(),
		Timestamp: m.GetTimestamp(),
	}
	return nil
}

// FileOffer precedes the raw bytes on the file port. Exactly Size bytes follow it.
type FileOffer struct {
	ID       string
	Sender   string
	Name     string
	Size     uint64
	Checksum string
}

func (*FileOffer) Type() MessageType { return MsgFileOffer }

func (f *FileOffer) marshal() ([]byte, error) {
	return proto.Marshal(&pb.FileOffer{
		Id:       f.ID,
		Sender:   f.Sender,
		Name:     f.Name,
		Size:     f.Size,
		Checksum: f.Checksum,
	})
}

func (f *FileOffer) unmarshal(b []byte) error {
	var m pb.FileOffer
	if err := proto.Unmarshal(b, &m); err != nil {
		return err
	}
	*f = FileOffer{
		ID:       m.GetId(),
		Sender:   m.GetSender(),
		Name:     m.GetName(),
		Size:     m.GetSize(),
		Checksum: m.GetChecksum(),
	}
	return nil
}
