package domain

import "time"

type Entity string

const (
	EntityUser    Entity = "user"
	EntityProduct Entity = "product"
	EntityOrder   Entity = "order"
)

// ActivityEvent records a mutation applied by the domain store.
type ActivityEvent struct {
	ID        string    `json:"id" bson:"_id"`
	Entity    Entity    `json:"entity" bson:"entity"`
	EntityID  string    `json:"entityId" bson:"entity_id"`
	Action    string    `json:"action" bson:"action"`
	ActorID   string    `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	Summary   string    `json:"summary" bson:"summary"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
