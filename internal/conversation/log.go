// Package conversation persists the ordered message history shared by two participants.
package conversation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/natefinch/atomic"
	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/rudransh-shrivastava/peer-chat/internal/metrics"
	"github.com/sirupsen/logrus"
)

const fileExt = ".xml"

var (
	ErrInvalidKey = errors.New("invalid conversation key")
	// ErrUnencodable is returned for a sender or timestamp XML cannot carry. Bodies never
	// fail this way; they are stored base64-encoded instead.
	ErrUnencodable = errors.New("value cannot be stored in the log")
)

const base64Encoding = "base64"

type Config struct {
	Dir    string
	Logger *logrus.Logger
}

// Log stores one XML document per Key under Dir. Appends to the same key are serialized
// in-process by a per-key lock and across processes by an advisory file lock; each append
// rewrites the whole document through a temp file and rename.
type Log struct {
	dir    string
	logger *logrus.Logger

	mu    sync.Mutex
	locks map[Key]*sync.RWMutex
}

type document struct {
	XMLName  xml.Name     `xml:"conversation"`
	Messages []xmlMessage `xml:"message"`
}

type xmlMessage struct {
	Sender    string `xml:"sender,attr"`
	Timestamp string `xml:"timestamp,attr"`
	Encoding  string `xml:"encoding,attr,omitempty"`
	Body      string `xml:",chardata"`
}

func newXMLMessage(r Record) (xmlMessage, error) {
	if !xmlSafe(r.Sender) || !xmlSafe(r.Timestamp) {
		return xmlMessage{}, fmt.Errorf("%w: sender %q, timestamp %q", ErrUnencodable, r.Sender, r.Timestamp)
	}

	m := xmlMessage{Sender: r.Sender, Timestamp: r.Timestamp, Body: r.Body}
	if !xmlSafe(r.Body) {
		m.Encoding = base64Encoding
		m.Body = base64.StdEncoding.EncodeToString([]byte(r.Body))
	}
	return m, nil
}

func (m xmlMessage) record() (Record, error) {
	r := Record{Sender: m.Sender, Body: m.Body, Timestamp: m.Timestamp}
	switch m.Encoding {
	case "":
	case base64Encoding:
		body, err := base64.StdEncoding.DecodeString(m.Body)
		if err != nil {
			return Record{}, fmt.Errorf("decoding body from %s: %w", m.Sender, err)
		}
		r.Body = string(body)
	default:
		return Record{}, fmt.Errorf("unknown body encoding %q", m.Encoding)
	}
	return r, nil
}

// xmlSafe reports whether s survives an XML 1.0 round trip unchanged.
func xmlSafe(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return false
			}
		}
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

func NewLog(cfg Config) (*Log, error) {
	if cfg.Dir == "" {
		return nil, errors.New("conversation log directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewLogger()
	}

	return &Log{
		dir:    cfg.Dir,
		logger: log,
		locks:  make(map[Key]*sync.RWMutex),
	}, nil
}

// Keys lists every conversation that has a log file, in file name order. Files that do not
// name a canonical key are skipped.
func (l *Log) Keys(ctx context.Context) ([]Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}

	keys := []Key{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != fileExt {
			continue
		}
		key, err := ParseKey(strings.TrimSuffix(name, fileExt))
		if err != nil {
			l.logger.WithField("file", name).Debug("Skipping file that is not a conversation log")
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Path returns the file holding key's history. The file may not exist yet.
func (l *Log) Path(key Key) string {
	return filepath.Join(l.dir, key.String()+fileExt)
}

func (l *Log) lockPath(key Key) string {
	return filepath.Join(l.dir, "."+key.String()+".lock")
}

func (l *Log) keyLock(key Key) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.RWMutex{}
		l.locks[key] = lock
	}
	return lock
}

// Append adds record at the end of key's history. The record is visible to Read once
// Append returns nil.
func (l *Log) Append(ctx context.Context, key Key, record Record) error {
	if !key.valid() {
		return &StorageError{Op: "append", Key: key, Err: ErrInvalidKey}
	}
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: "append", Key: key, Err: err}
	}
	msg, err := newXMLMessage(record)
	if err != nil {
		return &StorageError{Op: "append", Key: key, Err: err}
	}

	start := time.Now()

	lock := l.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	unlock, err := lockFile(l.lockPath(key))
	if err != nil {
		return &StorageError{Op: "append", Key: key, Err: err}
	}
	defer func() {
		if err := unlock(); err != nil {
			l.logger.WithError(err).WithField("key", key.String()).Warn("Failed to release log file lock")
		}
	}()

	doc, err := l.load(key)
	if err != nil {
		return &StorageError{Op: "append", Key: key, Err: err}
	}

	doc.Messages = append(doc.Messages, msg)

	if err := l.write(key, doc); err != nil {
		return &StorageError{Op: "append", Key: key, Err: err}
	}

	metrics.LogAppends.Inc()
	metrics.LogRewriteDuration.Observe(time.Since(start).Seconds())
	l.logger.WithFields(logrus.Fields{
		"key":     key.String(),
		"records": len(doc.Messages),
	}).Debug("Appended record to conversation log")
	return nil
}

// Read returns key's records oldest first, or an empty slice if nothing was logged yet.
func (l *Log) Read(ctx context.Context, key Key) ([]Record, error) {
	if !key.valid() {
		return nil, &StorageError{Op: "read", Key: key, Err: ErrInvalidKey}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "read", Key: key, Err: err}
	}

	lock := l.keyLock(key)
	lock.RLock()
	defer lock.RUnlock()

	doc, err := l.load(key)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: key, Err: err}
	}

	records := make([]Record, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		r, err := m.record()
		if err != nil {
			return nil, &StorageError{Op: "read", Key: key, Err: err}
		}
		records = append(records, r)
	}
	return records, nil
}

func (l *Log) load(key Key) (*document, error) {
	data, err := os.ReadFile(l.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return &document{}, nil
	}
	if err != nil {
		return nil, err
	}

	doc := &document{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(l.Path(key)), err)
	}
	return doc, nil
}

func (l *Log) write(key Key, doc *document) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding log: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(data)
	buf.WriteByte('\n')

	return atomic.WriteFile(l.Path(key), &buf)
}
