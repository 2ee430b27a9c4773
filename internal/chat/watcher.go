package chat

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tigs-dev/tigs/internal/logger"
)

// Watcher watches provider session directories and signals when the set
// of session logs may have changed. Events are debounced so a burst of
// writes produces a single refresh.
type Watcher struct {
	dirs     []string
	debounce time.Duration

	// Events receives one value per refresh-worthy change burst.
	Events chan struct{}

	done chan struct{}
}

// NewWatcher builds a watcher over the given directories. Directories
// that don't exist yet are skipped.
func NewWatcher(dirs []string) *Watcher {
	return &Watcher{
		dirs:     dirs,
		debounce: 500 * time.Millisecond,
		Events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Run blocks, forwarding debounced filesystem events until Stop is
// called. Intended to run on its own goroutine.
func (w *Watcher) Run() {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("Watcher: failed to start: %v", err)
		return
	}
	defer fw.Close()

	watching := 0
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err == nil {
			if err := fw.Add(dir); err == nil {
				watching++
			}
		}
	}
	if watching == 0 {
		return
	}

	var timer *time.Timer

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(filepath.Base(event.Name), ".jsonl") {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				// Non-blocking send: a pending refresh already covers this burst.
				select {
				case w.Events <- struct{}{}:
				default:
				}
			})

		case _, ok := <-fw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient, keep going.
		}
	}
}

// Stop signals the watcher to exit.
func (w *Watcher) Stop() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}
