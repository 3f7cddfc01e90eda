package app

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"selection-canvas/internal/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// HotReloader watches the running binary for changes and triggers a callback
// when a newer version is detected. This is useful during development to
// prompt for restart after recompilation.
type HotReloader struct {
	execPath    string
	startupTime time.Time
	settle      time.Duration
	onNewBinary func() // Called when newer binary detected

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	log     *logrus.Entry
}

// NewHotReloader creates a hot reloader for the current executable. Write
// bursts are coalesced until no event arrived for the settle duration.
// Returns nil if the executable path cannot be determined.
func NewHotReloader(settle time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	return newHotReloader(execPath, settle)
}

func newHotReloader(execPath string, settle time.Duration) *HotReloader {
	// go build replaces the file, so resolve symlinks to the real target
	if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = realPath
	}

	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}

	return &HotReloader{
		execPath:    execPath,
		startupTime: info.ModTime(),
		settle:      settle,
		log:         logging.Component("hotreload"),
	}
}

// OnNewBinary sets the callback to invoke when a newer binary is detected.
// The callback runs on the watcher goroutine.
func (h *HotReloader) OnNewBinary(callback func()) {
	h.onNewBinary = callback
}

// Start begins watching the executable's directory. The directory is
// watched rather than the file because builds replace it with a rename.
func (h *HotReloader) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(h.execPath)); err != nil {
		w.Close()
		return err
	}

	h.mu.Lock()
	h.watcher = w
	h.stopCh = make(chan struct{})
	stop := h.stopCh
	h.mu.Unlock()

	go h.watchLoop(w, stop)
	return nil
}

// Stop stops the watcher goroutine.
func (h *HotReloader) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watcher == nil {
		return
	}
	close(h.stopCh)
	h.watcher.Close()
	h.watcher = nil
}

func (h *HotReloader) watchLoop(w *fsnotify.Watcher, stop <-chan struct{}) {
	var settle <-chan time.Time
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != h.execPath {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				settle = time.After(h.settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.log.WithError(err).Warn("watch error")
		case <-settle:
			settle = nil
			if h.checkForUpdate() && h.onNewBinary != nil {
				h.onNewBinary()
				// Only trigger once - stop watching after detection
				return
			}
		}
	}
}

// checkForUpdate returns true if the binary has been modified since startup.
func (h *HotReloader) checkForUpdate() bool {
	info, err := os.Stat(h.execPath)
	if err != nil {
		return false
	}
	return info.ModTime().After(h.startupTime)
}

// ExecPath returns the path to the current executable.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// StartupTime returns when the binary was last modified at program start.
func (h *HotReloader) StartupTime() time.Time {
	return h.startupTime
}

// ResetBaseline updates the baseline timestamp to the current binary's mod time.
// Call this when the user declines a restart to avoid repeated notifications.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.startupTime = info.ModTime()
	}
}

// Restart replaces the current process with a new instance of the binary.
// This function does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
