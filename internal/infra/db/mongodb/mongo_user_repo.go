package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"telegram-post-curator/internal/domain"
	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
	"telegram-post-curator/internal/infra/metrics"
)

var _ repository.UserRepository = (*MongoUserRepo)(nil)

type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(usersCollection)}
}

// InsertIfAbsent upserts with $setOnInsert so an existing document is never touched.
func (r *MongoUserRepo) InsertIfAbsent(ctx context.Context, u *model.User) (bool, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = storeNow()
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"tg_id": u.TelegramID},
		bson.M{"$setOnInsert": toUserDoc(u)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// A concurrent first contact won the race on the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, storeErr("UserRepo.InsertIfAbsent", err)
	}
	return res.UpsertedCount == 1, nil
}

func (r *MongoUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, bson.M{"tg_id": tgID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("UserRepo.FindByTelegramID", err)
	}
	return d.toModel(), nil
}

func storeErr(op string, err error) error {
	metrics.IncStoreError(backend, op)
	return domain.E(domain.KindStoreOperation, "mongodb."+op, err)
}
