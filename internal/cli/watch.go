package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// burstDelay batches the events of a single logical edit. Editors commonly
// emit chmod, write and rename events in quick succession.
const burstDelay = 16 * time.Millisecond

// watchFile calls onChange after every change to path until ctx is done.
// The parent directory is watched rather than the file itself so that
// editors replacing the file by rename keep being observed.
func watchFile(ctx context.Context, path string, onChange func()) error {
	path = filepath.Clean(path)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	logger := loggerFromContext(ctx)
	burst := time.NewTimer(burstDelay)
	if !burst.Stop() {
		<-burst.C
	}
	pending := false

	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if filepath.Clean(ev.Name) != path || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			pending = true
			burst.Reset(burstDelay)
		case <-burst.C:
			if pending {
				pending = false
				onChange()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			logger.Error("file watcher error", "err", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
