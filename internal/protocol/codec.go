package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	ErrMalformed     = errors.New("malformed payload")
	ErrUnknownType   = errors.New("unknown message type")
)

// Codec reads and writes one frame: [4-byte big-endian length][type byte][protobuf body].
// The length covers the type byte and the body.
type Codec struct {
	maxFrameSize uint32
}

func NewCodec() *Codec {
	return &Codec{maxFrameSize: MaxFrameSize}
}

func (c *Codec) Encode(w io.Writer, msg Message) error {
	body, err := msg.marshal()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	size := 1 + len(body)
	if size > int(c.maxFrameSize) {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	frame := make([]byte, FrameHeaderSize, FrameHeaderSize+size)
	binary.BigEndian.PutUint32(frame, uint32(size))
	frame = append(frame, byte(msg.Type()))
	frame = append(frame, body...)

	_, err = w.Write(frame)
	return err
}

func (c *Codec) Decode(r io.Reader) (Message, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrMalformed)
	}
	if length > c.maxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}

	var msg Message
	switch MessageType(data[0]) {
	case MsgChat:
		msg = &Envelope{}
	case MsgFileOffer:
		msg = &FileOffer{}
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownType, data[0])
	}

	if err := msg.unmarshal(data[1:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return msg, nil
}

func (c *Codec) EncodeToBytes(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) DecodeFromBytes(data []byte) (Message, error) {
	return c.Decode(bytes.NewReader(data))
}
