package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
)

var _ repository.EventRepository = (*MongoEventRepo)(nil)

type MongoEventRepo struct {
	coll *mongo.Collection
}

func NewMongoEventRepo(db *mongo.Database) *MongoEventRepo {
	return &MongoEventRepo{coll: db.Collection(eventsCollection)}
}

func (r *MongoEventRepo) Insert(ctx context.Context, e *model.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = storeNow()
	}
	_, err := r.coll.InsertOne(ctx, eventDoc{
		ID:         e.ID,
		TelegramID: e.TelegramID,
		Text:       e.Text,
		CreatedAt:  e.CreatedAt,
	})
	if err != nil {
		return storeErr("EventRepo.Insert", err)
	}
	return nil
}

func (r *MongoEventRepo) FindByTelegramIDBetween(ctx context.Context, tgID int64, start, end time.Time) ([]*model.Event, error) {
	filter := bson.M{
		"tg_id":      tgID,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("EventRepo.FindByTelegramIDBetween", err)
	}
	var docs []eventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr("EventRepo.FindByTelegramIDBetween", err)
	}

	out := make([]*model.Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
