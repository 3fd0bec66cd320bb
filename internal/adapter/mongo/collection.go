package mongo

import (
	"context"
	"errors"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection is a typed MongoDB collection for one campus resource.
// Records are addressable by their ObjectID or by the numeric business
// key stored in keyField, which carries a sparse unique index.
type Collection[T entity.Entity] struct {
	coll      *mongo.Collection
	keyField  string
	newRecord func() T
	logger    *logger.Logger
}

func NewCollection[T entity.Entity](db *mongo.Database, name, keyField string, newRecord func() T, log *logger.Logger) *Collection[T] {
	coll := db.Collection(name)

	if keyField != "" {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		idx := mongo.IndexModel{
			Keys:    bson.D{{Key: keyField, Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		}
		if _, err := coll.Indexes().CreateOne(ctx, idx); err != nil {
			log.Warn("Failed to ensure business key index", zap.String("collection", name), zap.String("key", keyField), zap.Error(err))
		}
	}

	return &Collection[T]{
		coll:      coll,
		keyField:  keyField,
		newRecord: newRecord,
		logger:    log.Named("Collection").With(zap.String("collection", name)),
	}
}

func (c *Collection[T]) filterFor(id string) (bson.M, bool) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}, true
	}
	if c.keyField == "" {
		return nil, false
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, false
	}
	return bson.M{c.keyField: n}, true
}

func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	if _, err := c.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		c.logger.Error("Failed to insert record", zap.Error(err))
		return wrapStoreErr("insert", err)
	}
	return nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	filter, ok := c.filterFor(id)
	if !ok {
		return zero, domain.ErrNotFound
	}

	rec := c.newRecord()
	if err := c.coll.FindOne(ctx, filter).Decode(rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.ErrNotFound
		}
		c.logger.Error("Failed to find record", zap.String("id", id), zap.Error(err))
		return zero, wrapStoreErr("find", err)
	}
	return rec, nil
}

// List returns one page in insertion order together with the total
// number of records in the collection.
func (c *Collection[T]) List(ctx context.Context, skip, limit int64) ([]T, int64, error) {
	total, err := c.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, wrapStoreErr("count", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, wrapStoreErr("find page", err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0, limit)
	for cursor.Next(ctx) {
		rec := c.newRecord()
		if err := cursor.Decode(rec); err != nil {
			return nil, 0, wrapStoreErr("decode", err)
		}
		items = append(items, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, wrapStoreErr("cursor", err)
	}

	return items, total, nil
}

func (c *Collection[T]) Replace(ctx context.Context, rec T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": rec.GetBase().ID}, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		c.logger.Error("Failed to replace record", zap.String("id", rec.GetBase().ID.Hex()), zap.Error(err))
		return wrapStoreErr("replace", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (primitive.ObjectID, error) {
	filter, ok := c.filterFor(id)
	if !ok {
		return primitive.NilObjectID, domain.ErrNotFound
	}

	var deleted struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOneAndDelete().SetProjection(bson.M{"_id": 1})
	if err := c.coll.FindOneAndDelete(ctx, filter, opts).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, domain.ErrNotFound
		}
		c.logger.Error("Failed to delete record", zap.String("id", id), zap.Error(err))
		return primitive.NilObjectID, wrapStoreErr("delete", err)
	}
	return deleted.ID, nil
}
