// Package watch polls a menu definition file and publishes the decoded file
// whenever it changes on disk.
package watch

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/logging/events"
)

const reloadSpacing = 250 * time.Millisecond

// Event carries a freshly decoded menu file or the error that prevented it.
type Event struct {
	Path string
	File config.MenuFile
	Err  error
}

// Watcher polls one file at a fixed interval.
type Watcher struct {
	path     string
	interval time.Duration
	load     func(string) (config.MenuFile, error)
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

type fileState struct {
	modTime time.Time
	size    int64
	missing bool
}

// NewWatcher starts polling path every interval. A non-positive interval
// yields a watcher whose event channel is already closed.
func NewWatcher(path string, interval time.Duration) *Watcher {
	return newWatcher(path, interval, config.LoadMenuFile)
}

func newWatcher(path string, interval time.Duration, load func(string) (config.MenuFile, error)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		load:     load,
		throttle: newThrottle(reloadSpacing),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	if interval > 0 && path != "" {
		w.wg.Add(1)
		go w.poll(w.stat())
	}
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel of reload events. It is closed once the
// watcher has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels polling.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) stat() fileState {
	info, err := os.Stat(w.path)
	if err != nil {
		return fileState{missing: true}
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}
}

func (s fileState) same(o fileState) bool {
	return s.missing == o.missing && s.size == o.size && s.modTime.Equal(o.modTime)
}

func (w *Watcher) poll(last fileState) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
		cur := w.stat()
		if cur.same(last) {
			continue
		}
		last = cur
		if !w.throttle.wait(w.ctx) {
			return
		}
		evt := Event{Path: w.path}
		if cur.missing {
			evt.Err = &os.PathError{Op: "stat", Path: w.path, Err: os.ErrNotExist}
		} else {
			evt.File, evt.Err = w.load(w.path)
		}
		if evt.Err != nil {
			events.Watch.Error(w.path, evt.Err)
		} else {
			events.Watch.Changed(w.path)
		}
		select {
		case <-w.ctx.Done():
			return
		case w.events <- evt:
		}
	}
}
