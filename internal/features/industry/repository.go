package industry

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ListFilter struct {
	Search   string
	Status   string
	Category string
}

func (f ListFilter) bson() bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return filter
}

type IndustryRepository interface {
	List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Industry, int64, error)
	FindByID(ctx context.Context, id string) (*Industry, bool, error)
	// Refs lists the id and name of every active industry, by name.
	Refs(ctx context.Context) ([]Ref, error)
	EnsureIndexes(ctx context.Context)
}

type IndustryRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewIndustryRepository(mongodb *database.MongodbDB, logger *zap.Logger) IndustryRepository {
	return &IndustryRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionIndustries),
		Logger:     logger,
	}
}

func (r *IndustryRepositoryImpl) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Industry, int64, error) {
	return query.Page[Industry](ctx, r.Collection, f.bson(), bson.D{{Key: "createdAt", Value: -1}}, q)
}

func (r *IndustryRepositoryImpl) FindByID(ctx context.Context, id string) (*Industry, bool, error) {
	return query.One[Industry](ctx, r.Collection, id)
}

func (r *IndustryRepositoryImpl) Refs(ctx context.Context) ([]Ref, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1}).SetSort(bson.D{{Key: "name", Value: 1}})
	return query.All[Ref](ctx, r.Collection, bson.M{"status": bson.M{"$ne": "inactive"}}, opts)
}

func (r *IndustryRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger,
		query.Text("name", "description", "overview"),
		mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	)
}
