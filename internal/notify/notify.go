// Package notify carries user-visible outcome messages. Every store operation
// ends in exactly one notification, success or error.
package notify

import (
	"slices"
	"sync"

	"github.com/idilsaglam/todolists/internal/errs"
)

type Severity int

const (
	Success Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "success"
}

type Notification struct {
	Severity Severity
	Text     string
}

// Sink accepts notifications and owns how they are displayed.
type Sink interface {
	Notify(Notification)
}

// Func adapts a function to Sink.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops everything.
var Discard Sink = Func(func(Notification) {})

func OK(s Sink, text string) { s.Notify(Notification{Severity: Success, Text: text}) }

// Fail reports err using its user-facing message.
func Fail(s Sink, err error) { s.Notify(Notification{Severity: Error, Text: errs.Message(err)}) }

// Recorder keeps every notification it receives.
type Recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.got)
}

// Errors returns only the error notifications.
func (r *Recorder) Errors() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.got {
		if n.Severity == Error {
			out = append(out, n)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = nil
}
