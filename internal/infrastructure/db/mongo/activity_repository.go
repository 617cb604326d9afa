package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/halolight/admin-backend/internal/core/domain"
)

const activityCollection = "activity_logs"

// ActivityRepository appends audit-trail entries.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	UserID    string    `bson:"user_id"`
	Action    string    `bson:"action"`
	Detail    string    `bson:"detail,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	at := entry.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, activityDoc{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Detail:    entry.Detail,
		IP:        entry.IP,
		CreatedAt: at,
	})
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}
