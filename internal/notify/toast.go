package notify

import (
	"sync"
	"time"

	"github.com/idilsaglam/todolists/internal/view"
)

// DefaultDelay is how long a toast stays visible.
const DefaultDelay = 5 * time.Second

const hiddenClass = "hidden"

// Toast shows the latest notification in a single node and hides it again
// after Delay. Hiding toggles a class; the node stays in the tree.
type Toast struct {
	delay time.Duration
	timer bool

	mu      sync.Mutex
	node    *view.Node
	current Notification
	seq     uint64
}

type ToastOption func(*Toast)

// WithoutTimer leaves expiry to the caller, who calls Expire with the sequence
// number returned by Seq. Front ends with their own tick loop use this.
func WithoutTimer() ToastOption { return func(t *Toast) { t.timer = false } }

func NewToast(delay time.Duration, opts ...ToastOption) *Toast {
	if delay <= 0 {
		delay = DefaultDelay
	}
	t := &Toast{
		delay: delay,
		timer: true,
		node:  view.New("div", "notice", hiddenClass),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Toast) Notify(n Notification) {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.current = n
	t.node.SetText(n.Text)
	t.node.ToggleClass("notice-success", n.Severity == Success)
	t.node.ToggleClass("notice-error", n.Severity == Error)
	t.node.RemoveClass(hiddenClass)
	t.mu.Unlock()

	if t.timer {
		time.AfterFunc(t.delay, func() { t.Expire(seq) })
	}
}

// Expire hides the toast if seq is still the latest notification. A newer
// notification restarts the window.
func (t *Toast) Expire(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return false
	}
	t.node.AddClass(hiddenClass)
	return true
}

func (t *Toast) Delay() time.Duration { return t.delay }

// Seq numbers notifications; it increments on every Notify.
func (t *Toast) Seq() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

func (t *Toast) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.node.HasClass(hiddenClass)
}

// Current returns the notification shown last, visible or not.
func (t *Toast) Current() Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Node returns the toast's node for mounting into a page.
func (t *Toast) Node() *view.Node { return t.node }
