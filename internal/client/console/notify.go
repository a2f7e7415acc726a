package console

import (
	"fmt"
	"io"
	"sync"
)

// Kind is the severity of a notification.
type Kind string

const (
	Success Kind = "success"
	Failure Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Notification is a transient, dismissible message for the operator.
type Notification struct {
	Kind    Kind
	Message string
}

type Notifier interface {
	Notify(n Notification)
}

// WriterNotifier prints notifications one per line.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", note.Kind, note.Message)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Notification{}, false
	}
	return r.notes[len(r.notes)-1], true
}
