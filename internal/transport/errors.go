package transport

import (
	"errors"
	"fmt"
)

var ErrListenerStarted = errors.New("listener already started")

// BindError means the listener could not acquire its address. It is not retried.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// DeliveryError means a payload did not reach the peer's socket. Op is the failed step:
// "dial", "encode", "write" or, for files, "open", "stat" and "read".
type DeliveryError struct {
	Addr string
	Op   string
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %s: %v", e.Addr, e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// DecodeError means an inbound connection carried an unreadable payload. Only that
// connection is dropped.
type DecodeError struct {
	Remote string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode from %s: %v", e.Remote, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
