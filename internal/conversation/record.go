package conversation

import (
	"fmt"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/protocol"
)

// Record is one logged message. The timestamp is formatted once, at creation.
type Record struct {
	Sender    string
	Body      string
	Timestamp string
}

func NewRecord(sender, body string, now time.Time) Record {
	return Record{
		Sender:    sender,
		Body:      body,
		Timestamp: now.Format(protocol.TimestampLayout),
	}
}

// RecordFromEnvelope keeps the envelope's timestamp so both sides log the same value.
func RecordFromEnvelope(env *protocol.Envelope) Record {
	return Record{
		Sender:    env.Sender,
		Body:      env.Body,
		Timestamp: env.Timestamp,
	}
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s [%s]", r.Sender, r.Body, r.Timestamp)
}
