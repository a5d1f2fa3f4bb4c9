package contact

import (
	"context"

	"invest-portal/internal/common/models"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ContactRepository interface {
	Create(ctx context.Context, s *Submission) error
	List(ctx context.Context, lq ListQuery, q models.PageQuery) ([]Submission, int64, error)
	All(ctx context.Context) ([]Submission, error)
	EnsureIndexes(ctx context.Context)
}

type ContactRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewContactRepository(mongodb *database.MongodbDB, logger *zap.Logger) ContactRepository {
	return &ContactRepositoryImpl{
		Collection: mongodb.DB.Collection("contactforms"),
		Logger:     logger,
	}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, s *Submission) error {
	res, err := r.Collection.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ContactRepositoryImpl) List(ctx context.Context, lq ListQuery, q models.PageQuery) ([]Submission, int64, error) {
	filter := bson.M{}
	if lq.Search != "" {
		filter["$or"] = query.AnyOf(lq.Search, lq.Fields...)
	}
	dir := -1
	if lq.Ascending {
		dir = 1
	}
	return query.Page[Submission](ctx, r.Collection, filter, bson.D{{Key: lq.SortField(), Value: dir}}, q)
}

func (r *ContactRepositoryImpl) All(ctx context.Context) ([]Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return query.All[Submission](ctx, r.Collection, bson.M{}, opts)
}

func (r *ContactRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
}
