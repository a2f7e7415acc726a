// Package mongo is the persistent domain store. Each collection has its own
// repository; Store bundles them with index and seed management.
package mongo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	// defaultTimeout bounds each repository query.
	defaultTimeout = 10 * time.Second
)

type Config struct {
	URI      string
	Database string
	// Timeout bounds connect and the first ping; zero means connectTimeout.
	Timeout time.Duration
}

// Connect opens a client against cfg.URI and waits for the primary to answer.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("backoffice").
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect %s: %w", cfg.Database, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

var lastSeq atomic.Int64

// insertionSeq is strictly increasing within the process. List queries sort
// on it so results come back in insertion order.
func insertionSeq() int64 {
	for {
		now := time.Now().UnixNano()
		prev := lastSeq.Load()
		if now <= prev {
			now = prev + 1
		}
		if lastSeq.CompareAndSwap(prev, now) {
			return now
		}
	}
}
