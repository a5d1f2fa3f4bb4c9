package district

import (
	"context"
	"errors"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DistrictRepository interface {
	List(ctx context.Context) ([]District, error)
	// FindByName matches districtName exactly, ignoring case.
	FindByName(ctx context.Context, name string) (*District, error)
	Refs(ctx context.Context) ([]Ref, error)
}

type DistrictRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDistrictRepository(mongodb *database.MongodbDB) DistrictRepository {
	return &DistrictRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionDistricts),
	}
}

func (r *DistrictRepositoryImpl) List(ctx context.Context) ([]District, error) {
	return query.All[District](ctx, r.Collection, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *DistrictRepositoryImpl) FindByName(ctx context.Context, name string) (*District, error) {
	var d District
	err := r.Collection.FindOne(ctx, bson.M{"districtName": query.Exact(name)}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DistrictRepositoryImpl) Refs(ctx context.Context) ([]Ref, error) {
	opts := options.Find().
		SetProjection(bson.M{"districtName": 1, "state": 1}).
		SetSort(bson.D{{Key: "districtName", Value: 1}})
	return query.All[Ref](ctx, r.Collection, bson.M{}, opts)
}
