// Package query holds the typed read helpers shared by feature repositories.
package query

import (
	"context"
	"regexp"
	"strings"

	"invest-portal/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Contains matches term anywhere in the field, case-insensitively, with regex metacharacters quoted.
func Contains(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(strings.TrimSpace(term)), "$options": "i"}
}

// Exact matches the whole field case-insensitively.
func Exact(term string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(strings.TrimSpace(term)) + "$", "$options": "i"}
}

// AnyOf ORs Contains(term) across fields.
func AnyOf(term string, fields ...string) bson.A {
	or := bson.A{}
	for _, f := range fields {
		or = append(or, bson.M{f: Contains(term)})
	}
	return or
}

func ObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// All decodes every document matching filter.
func All[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Page returns one page of documents and the total match count.
func Page[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, sort interface{}, q models.PageQuery) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSkip(q.Skip()).SetLimit(q.Limit)
	if sort != nil {
		opts.SetSort(sort)
	}
	items, err := All[T](ctx, coll, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// One decodes the document with id, reporting false when it does not exist.
func One[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, bool, error) {
	oid, ok := ObjectID(id)
	if !ok {
		return nil, false, nil
	}
	var out T
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &out, true, nil
}

// EnsureIndexes creates indexes and logs failures instead of returning them.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, logger *zap.Logger, indexes ...mongo.IndexModel) {
	if len(indexes) == 0 {
		return
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return
	}
	logger.Debug("Indexes ensured", zap.String("collection", coll.Name()), zap.Int("count", len(indexes)))
}

// Text builds a text index over fields.
func Text(fields ...string) mongo.IndexModel {
	keys := bson.D{}
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: "text"})
	}
	return mongo.IndexModel{Keys: keys}
}
