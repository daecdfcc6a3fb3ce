package view

import (
	"sync"
	"time"
)

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Transient banners self-clear after a fixed duration.
const (
	SuccessNoticeTTL = 3 * time.Second
	ErrorNoticeTTL   = 5 * time.Second
)

// Notice is a transient banner shown on the dashboard.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// notifier owns the single transient banner of one view. A superseding
// notice restarts the dismiss timer; teardown stops it so nothing fires
// after the view is gone.
type notifier struct {
	mu      sync.Mutex
	current *Notice
	timer   *time.Timer
}

func (n *notifier) set(kind NoticeKind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = &Notice{Kind: kind, Message: msg}

	ttl := SuccessNoticeTTL
	if kind == NoticeError {
		ttl = ErrorNoticeTTL
	}
	n.timer = time.AfterFunc(ttl, n.clear)
}

func (n *notifier) clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = nil
}

func (n *notifier) get() *Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	copied := *n.current
	return &copied
}

func (n *notifier) stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}
