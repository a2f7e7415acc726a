package memory

import (
	"context"
	"testing"
	"time"
)

func TestDenylist_Expires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDenylist()
	d.now = func() time.Time { return now }
	ctx := context.Background()

	_ = d.Revoke(ctx, "tok", time.Minute)
	if revoked, _ := d.IsRevoked(ctx, "tok"); !revoked {
		t.Fatalf("expected token to be revoked")
	}
	if revoked, _ := d.IsRevoked(ctx, "other"); revoked {
		t.Fatalf("unexpected revocation")
	}

	now = now.Add(2 * time.Minute)
	if revoked, _ := d.IsRevoked(ctx, "tok"); revoked {
		t.Fatalf("expected revocation to expire")
	}
}
