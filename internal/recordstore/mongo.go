package recordstore

import (
	"context"
	"errors"
	"fmt"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(mongodb *database.MongodbDB, collection string) *MongoStore {
	return &MongoStore{
		Collection: mongodb.DB.Collection(collection),
	}
}

func (s *MongoStore) Create(ctx context.Context, doc Record) (Record, error) {
	rec := doc.Clone()
	if rec == nil {
		rec = Record{}
	}
	if _, ok := rec["_id"]; !ok {
		rec["_id"] = primitive.NewObjectID()
	}
	ts := now()
	rec["createdAt"] = ts
	rec["updatedAt"] = ts

	if _, err := s.Collection.InsertOne(ctx, bson.M(rec)); err != nil {
		return nil, mapWriteError(err)
	}
	return rec, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var m bson.M
	if err := s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return Record(Normalize(m).(map[string]any)), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, set Record) (Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	fields := bson.M{}
	for k, v := range set {
		if k == "_id" || k == "createdAt" {
			continue
		}
		fields[k] = v
	}
	fields["updatedAt"] = now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m bson.M
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, mapWriteError(err)
	}
	return Record(Normalize(m).(map[string]any)), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) Each(ctx context.Context, fn func(Record) error) error {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var m bson.M
		if err := cursor.Decode(&m); err != nil {
			return err
		}
		if err := fn(Record(Normalize(m).(map[string]any))); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
	}
	return err
}
