package out

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FSNotifier reports writes to the workspace database made by other
// processes. It watches the parent directory because SQLite replaces its
// journal files, and fsnotify cannot follow a file that is recreated.
type FSNotifier struct {
	dbPath   string
	debounce time.Duration
	log      zerolog.Logger
}

func NewFSNotifier(dbPath string, debounce time.Duration, log zerolog.Logger) *FSNotifier {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &FSNotifier{dbPath: filepath.Clean(dbPath), debounce: debounce, log: log}
}

func (n *FSNotifier) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(n.dbPath)); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !n.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(n.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(n.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			n.log.Warn().Err(err).Str("path", n.dbPath).Msg("catalog watcher error")
		}
	}
}

// relevant matches the database file and its -journal / -wal / -shm siblings.
func (n *FSNotifier) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == n.dbPath || strings.HasPrefix(name, n.dbPath+"-")
}
