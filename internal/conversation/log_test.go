package conversation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rudransh-shrivastava/peer-chat/internal/logger"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := NewLog(Config{Dir: t.TempDir(), Logger: logger.Discard()})
	require.NoError(t, err)
	return log
}

func mustKey(t *testing.T, a, b string) Key {
	t.Helper()
	key, err := CanonicalKey(a, b)
	require.NoError(t, err)
	return key
}

func TestCanonicalKeySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"bob", "alice"},
		{"Zed", "adam"},
		{"same", "same"},
		{"ünï", "codé"},
	}

	for _, p := range pairs {
		ab := mustKey(t, p[0], p[1])
		ba := mustKey(t, p[1], p[0])
		require.Equal(t, ab, ba)
		require.Equal(t, ab.String(), ba.String())
	}

	key := mustKey(t, "bob", "alice")
	require.Equal(t, "alice_bob", key.String())
	first, second := key.Participants()
	require.Equal(t, "alice", first)
	require.Equal(t, "bob", second)
	require.Equal(t, "bob", key.Peer("alice"))
	require.Equal(t, "alice", key.Peer("bob"))
}

func TestCanonicalKeyRejectsBadIdentities(t *testing.T) {
	for _, id := range []string{"", "..", "a/b", `a\b`, "a_b", "a\nb", "del\x7f", "bad\xff"} {
		_, err := CanonicalKey(id, "bob")
		require.ErrorIs(t, err, ErrInvalidIdentity, "identity %q", id)
	}
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("alice_bob")
	require.NoError(t, err)
	require.Equal(t, mustKey(t, "bob", "alice"), key)

	for _, s := range []string{"alice", "bob_alice", "a_b_c", "_bob", "alice_"} {
		_, err := ParseKey(s)
		require.Error(t, err, "key %q", s)
	}
}

func TestKeysListsConversationFiles(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	keys, err := log.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, log.Append(ctx, mustKey(t, "carol", "alice"), NewRecord("alice", "hi", time.Now())))
	require.NoError(t, log.Append(ctx, mustKey(t, "bob", "alice"), NewRecord("bob", "yo", time.Now())))
	require.NoError(t, os.WriteFile(filepath.Join(log.dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(log.dir, "bob_alice.xml"), []byte("<conversation/>"), 0o600))

	keys, err = log.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []Key{mustKey(t, "alice", "bob"), mustKey(t, "alice", "carol")}, keys)
}

func TestReadMissingConversation(t *testing.T) {
	log := newTestLog(t)

	records, err := log.Read(context.Background(), mustKey(t, "alice", "bob"))
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)

	_, err = os.Stat(log.Path(mustKey(t, "alice", "bob")))
	require.True(t, errors.Is(err, os.ErrNotExist), "read must not create the file")
}

func TestAppendPreservesOrder(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	key := mustKey(t, "alice", "bob")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	r1 := NewRecord("alice", "hi bob", now)
	r2 := NewRecord("bob", "hi alice", now.Add(time.Second))
	require.NoError(t, log.Append(ctx, key, r1))
	require.NoError(t, log.Append(ctx, key, r2))

	records, err := log.Read(ctx, key)
	require.NoError(t, err)
	require.Equal(t, []Record{r1, r2}, records)
	require.Equal(t, "2024-01-02 03:04:05", records[0].Timestamp)
}

func TestReadIsIdempotent(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	key := mustKey(t, "alice", "bob")

	require.NoError(t, log.Append(ctx, key, NewRecord("alice", "one", time.Now())))

	first, err := log.Read(ctx, key)
	require.NoError(t, err)
	second, err := log.Read(ctx, key)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRecordRoundTrip(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	key := mustKey(t, "alice", "bob")

	bodies := []string{
		"plain",
		"  leading and trailing spaces  ",
		"line one\nline two\r\nline three\ttabbed",
		`<tag attr="x">&amp; ' "quotes"</tag>`,
		"emoji 🎉 and ünïcödé",
	}

	var want []Record
	for i, body := range bodies {
		r := Record{Sender: "alice", Body: body, Timestamp: fmt.Sprintf("2024-01-01 00:00:%02d", i)}
		want = append(want, r)
		require.NoError(t, log.Append(ctx, key, r))
	}

	got, err := log.Read(ctx, key)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRecordRoundTripControlAndInvalidBytes(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	key := mustKey(t, "alice", "bob")

	bodies := []string{
		"\x1b[31mred\x1b[0m",
		"nul\x00byte",
		"bell\a",
		"bad\xffutf8",
		"literal \uFFFD replacement",
	}

	var want []Record
	for _, body := range bodies {
		r := NewRecord("alice", body, time.Now())
		want = append(want, r)
		require.NoError(t, log.Append(ctx, key, r))
	}

	got, err := log.Read(ctx, key)
	require.NoError(t, err)
	require.Equal(t, want, got)

	raw, err := os.ReadFile(log.Path(key))
	require.NoError(t, err)
	require.Contains(t, string(raw), `encoding="base64"`)
	require.Contains(t, string(raw), "literal \uFFFD replacement", "representable bodies stay plain text")
}

func TestAppendRejectsUnencodableSender(t *testing.T) {
	log := newTestLog(t)
	key := mustKey(t, "alice", "bob")

	err := log.Append(context.Background(), key, Record{Sender: "ali\x00ce", Body: "x", Timestamp: "t"})
	require.ErrorIs(t, err, ErrUnencodable)

	_, statErr := os.Stat(log.Path(key))
	require.True(t, errors.Is(statErr, os.ErrNotExist), "rejected append must not create the file")
}

func TestUnknownBodyEncodingIsStorageError(t *testing.T) {
	log := newTestLog(t)
	key := mustKey(t, "alice", "bob")
	doc := `<conversation><message sender="alice" timestamp="t" encoding="rot13">uryyb</message></conversation>`
	require.NoError(t, os.WriteFile(log.Path(key), []byte(doc), 0o600))

	_, err := log.Read(context.Background(), key)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
}

func TestAppendSharedAcrossParticipants(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	record := NewRecord("alice", "hello", time.Now())
	require.NoError(t, log.Append(ctx, mustKey(t, "alice", "bob"), record))

	records, err := log.Read(ctx, mustKey(t, "bob", "alice"))
	require.NoError(t, err)
	require.Equal(t, []Record{record}, records)
}

func TestConcurrentAppendsKeepEveryRecord(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	key := mustKey(t, "alice", "bob")

	const writers = 32
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- log.Append(ctx, key, NewRecord("alice", fmt.Sprintf("msg-%d", i), time.Now()))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	records, err := log.Read(ctx, key)
	require.NoError(t, err)
	require.Len(t, records, writers)

	seen := make(map[string]bool, writers)
	for _, r := range records {
		seen[r.Body] = true
	}
	for i := 0; i < writers; i++ {
		require.True(t, seen[fmt.Sprintf("msg-%d", i)], "record msg-%d was lost", i)
	}
}

func TestConcurrentAppendsAcrossLogInstances(t *testing.T) {
	dir := t.TempDir()
	a, err := NewLog(Config{Dir: dir, Logger: logger.Discard()})
	require.NoError(t, err)
	b, err := NewLog(Config{Dir: dir, Logger: logger.Discard()})
	require.NoError(t, err)

	ctx := context.Background()
	key := mustKey(t, "alice", "bob")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, a.Append(ctx, key, NewRecord("alice", fmt.Sprintf("a-%d", i), time.Now())))
		}(i)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, b.Append(ctx, key, NewRecord("bob", fmt.Sprintf("b-%d", i), time.Now())))
		}(i)
	}
	wg.Wait()

	records, err := a.Read(ctx, key)
	require.NoError(t, err)
	require.Len(t, records, 20)
}

func TestReadsLegacyDocument(t *testing.T) {
	log := newTestLog(t)
	key := mustKey(t, "alice", "bob")

	legacy := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<conversation>
    <message sender="alice" timestamp="2023-05-01 10:00:00">hey</message>
    <message sender="bob" timestamp="2023-05-01 10:00:07">hey yourself</message>
</conversation>
`
	require.NoError(t, os.WriteFile(log.Path(key), []byte(legacy), 0o600))

	records, err := log.Read(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, []Record{
		{Sender: "alice", Body: "hey", Timestamp: "2023-05-01 10:00:00"},
		{Sender: "bob", Body: "hey yourself", Timestamp: "2023-05-01 10:00:07"},
	}, records)
}

func TestCorruptDocumentIsStorageError(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()
	key := mustKey(t, "alice", "bob")
	require.NoError(t, os.WriteFile(log.Path(key), []byte("<conversation><message"), 0o600))

	_, err := log.Read(ctx, key)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, "read", storageErr.Op)

	err = log.Append(ctx, key, NewRecord("alice", "lost?", time.Now()))
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, "append", storageErr.Op)
}

func TestZeroKeyRejected(t *testing.T) {
	log := newTestLog(t)

	err := log.Append(context.Background(), Key{}, NewRecord("alice", "x", time.Now()))
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = log.Read(context.Background(), Key{})
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestAppendHonoursCancelledContext(t *testing.T) {
	log := newTestLog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := log.Append(ctx, mustKey(t, "alice", "bob"), NewRecord("alice", "x", time.Now()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecordString(t *testing.T) {
	r := Record{Sender: "alice", Body: "hello", Timestamp: "2024-01-01 00:00:00"}
	require.Equal(t, "alice: hello [2024-01-01 00:00:00]", r.String())
	require.True(t, strings.HasPrefix(r.String(), "alice: "))
}
