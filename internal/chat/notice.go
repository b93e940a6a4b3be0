package chat

import "fmt"

type NoticeKind int

const (
	NoticeUndelivered NoticeKind = iota
	NoticeNotLogged
	NoticeUnknownPeer
	NoticeFileFailed
	NoticeHistoryUnavailable
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeUndelivered:
		return "message not delivered"
	case NoticeNotLogged:
		return "message not saved"
	case NoticeUnknownPeer:
		return "unknown peer"
	case NoticeFileFailed:
		return "file not delivered"
	case NoticeHistoryUnavailable:
		return "history unavailable"
	default:
		return "notice"
	}
}

// Notice is a failure the user should see, as opposed to one only worth logging.
type Notice struct {
	Kind NoticeKind
	Peer string
	Err  error
}

func (n Notice) String() string {
	return fmt.Sprintf("%s to %s: %v", n.Kind, n.Peer, n.Err)
}
