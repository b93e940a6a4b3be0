package conversation

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch emits key's full history once immediately and again each time its file is
// rewritten, by this process or another one. The channel is closed when ctx is done.
func (l *Log) Watch(ctx context.Context, key Key) (<-chan []Record, error) {
	if !key.valid() {
		return nil, &StorageError{Op: "watch", Key: key, Err: ErrInvalidKey}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &StorageError{Op: "watch", Key: key, Err: err}
	}
	// Rewrites land through a rename, so the directory is watched rather than the file.
	if err := watcher.Add(l.dir); err != nil {
		_ = watcher.Close()
		return nil, &StorageError{Op: "watch", Key: key, Err: err}
	}

	out := make(chan []Record, 1)
	go l.watchLoop(ctx, key, watcher, out)
	return out, nil
}

func (l *Log) watchLoop(ctx context.Context, key Key, watcher *fsnotify.Watcher, out chan<- []Record) {
	defer close(out)
	defer watcher.Close()

	target := filepath.Clean(l.Path(key))
	log := l.logger.WithField("key", key.String())

	emit := func() bool {
		records, err := l.Read(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			log.WithError(err).Warn("Failed to read conversation after change")
			return true
		}
		select {
		case out <- records:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !emit() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !emit() {
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("Conversation watcher error")
		}
	}
}
