package mongo

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// counters hands out sequential string ids per collection.
type counters struct {
	col *mongo.Collection
}

func newCounters(db *mongo.Database) *counters {
	return &counters{col: db.Collection(collectionCounters)}
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func (c *counters) next(ctx context.Context, name string) (string, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := c.col.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).Decode(&doc)
	if err != nil {
		return "", fmt.Errorf("next %s id: %w", name, err)
	}
	return strconv.FormatInt(doc.Seq, 10), nil
}

// ensureAtLeast moves the counter forward so the next id is above n.
func (c *counters) ensureAtLeast(ctx context.Context, name string, n int64) error {
	_, err := c.col.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": n}},
		options.Update().SetUpsert(true),
	)
	return err
}
