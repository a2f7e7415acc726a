// Package state holds the client's view of each domain slice together with
// the lifecycle of the last operation issued against it.
//
// Operations block until the transport settles. The pending transition is
// applied before the request is issued, so a caller running an operation in
// a goroutine observes Pending as soon as the request is in flight.
// Overlapping operations on one container are not serialized: whichever
// settles last determines the final state. Every operation is stamped with
// a monotonic sequence number so callers can tell when the settled state
// belongs to an older request than the latest one issued.
package state

import "sync"

type Status int

const (
	Idle Status = iota
	Pending
	Fulfilled
	Rejected
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Lifecycle is the status of the most recently settled (or pending)
// operation. Error is non-empty only when Status is Rejected.
type Lifecycle struct {
	Status Status
	Error  string
	// Seq identifies the operation that produced this state.
	Seq uint64
	// Issued is the sequence number of the latest operation started.
	Issued uint64
}

func (l Lifecycle) Loading() bool { return l.Status == Pending }

// Stale reports whether a newer operation was issued after the one that
// produced this state.
func (l Lifecycle) Stale() bool { return l.Seq < l.Issued }

// message extracts the text stored in a rejected lifecycle.
func message(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// tracker owns a lifecycle and its change notifications. Callers hold mu.
type tracker struct {
	mu       sync.Mutex
	life     Lifecycle
	watchers map[int]chan struct{}
	nextID   int
}

func (t *tracker) beginLocked() uint64 {
	t.life.Issued++
	t.life = Lifecycle{Status: Pending, Seq: t.life.Issued, Issued: t.life.Issued}
	t.notifyLocked()
	return t.life.Seq
}

func (t *tracker) settleLocked(seq uint64, err error, fallback string) {
	if err != nil {
		t.life = Lifecycle{Status: Rejected, Error: message(err, fallback), Seq: seq, Issued: t.life.Issued}
	} else {
		t.life = Lifecycle{Status: Fulfilled, Seq: seq, Issued: t.life.Issued}
	}
	t.notifyLocked()
}

func (t *tracker) notifyLocked() {
	for _, ch := range t.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ClearError moves a rejected lifecycle back to idle. Held data is untouched.
func (t *tracker) ClearError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.life.Status == Rejected {
		t.life.Status = Idle
		t.life.Error = ""
		t.notifyLocked()
	}
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals coalesce; read the snapshot after each one. Call cancel to
// stop receiving.
func (t *tracker) Subscribe() (changes <-chan struct{}, cancel func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.watchers == nil {
		t.watchers = make(map[int]chan struct{})
	}
	id := t.nextID
	t.nextID++
	ch := make(chan struct{}, 1)
	t.watchers[id] = ch
	return ch, func() {
		t.mu.Lock()
		delete(t.watchers, id)
		t.mu.Unlock()
	}
}
