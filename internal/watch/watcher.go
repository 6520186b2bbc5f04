// Package watch 监听报表目录，文件变化时通知前端重新拉取视图
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Filter 决定某个文件名的变化是否需要通知
type Filter func(name string) bool

// Watcher 带去抖的目录监听器
type Watcher struct {
	dir      string
	debounce time.Duration
	filter   Filter
	hub      *Hub
	log      *zap.Logger

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]pendingEvent
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type pendingEvent struct {
	op string
	at time.Time
}

// New 创建监听器；filter 为 nil 时所有文件都会触发
func New(dir string, debounce time.Duration, filter Filter, hub *Hub, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		filter:   filter,
		hub:      hub,
		log:      log,
		watcher:  fw,
		pending:  make(map[string]pendingEvent),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start 开始监听（非阻塞）
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.log.Info("watching report directory", zap.String("dir", w.dir))

	go w.run(ctx)
	return nil
}

// Stop 停止监听并等待退出
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("close watcher failed", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(evt)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handle(evt fsnotify.Event) {
	name := filepath.Base(evt.Name)
	if w.filter != nil && !w.filter(name) {
		return
	}

	var op string
	switch {
	case evt.Has(fsnotify.Create):
		op = "create"
	case evt.Has(fsnotify.Write):
		op = "write"
	case evt.Has(fsnotify.Remove):
		op = "remove"
	case evt.Has(fsnotify.Rename):
		op = "rename"
	default:
		return
	}

	w.log.Debug("report file event", zap.String("file", name), zap.String("op", op))

	w.mu.Lock()
	w.pending[name] = pendingEvent{op: op, at: time.Now()}
	w.mu.Unlock()
}

// flush 发布静默超过去抖时长的事件
func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	ready := make([]Event, 0)
	for name, p := range w.pending {
		if now.Sub(p.at) >= w.debounce {
			ready = append(ready, Event{Type: "reports-changed", File: name, Op: p.op, At: p.at})
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	for _, evt := range ready {
		w.log.Info("report directory changed", zap.String("file", evt.File), zap.String("op", evt.Op))
		w.hub.Publish(evt)
	}
}
