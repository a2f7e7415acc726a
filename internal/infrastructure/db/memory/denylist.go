package memory

import (
	"context"
	"sync"
	"time"
)

// Denylist is the in-process token denylist used when Redis is not configured.
type Denylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{entries: make(map[string]time.Time), now: time.Now}
}

func (d *Denylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for t, exp := range d.entries {
		if !exp.After(now) {
			delete(d.entries, t)
		}
	}
	d.entries[token] = now.Add(ttl)
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.entries[token]
	return ok && exp.After(d.now()), nil
}
