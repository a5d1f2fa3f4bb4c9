package company

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type CompanyRepository interface {
	List(ctx context.Context, industry string) ([]Company, error)
	FindByID(ctx context.Context, id string) (*Company, bool, error)
	IndustryNames(ctx context.Context) ([]string, error)
	EnsureIndexes(ctx context.Context)
}

type CompanyRepositoryImpl struct {
	Collection *mongo.Collection
	Industries *mongo.Collection
	Logger     *zap.Logger
}

func NewCompanyRepository(mongodb *database.MongodbDB, logger *zap.Logger) CompanyRepository {
	return &CompanyRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionCompanies),
		Industries: mongodb.DB.Collection(attachment.CollectionIndustries),
		Logger:     logger,
	}
}

func (r *CompanyRepositoryImpl) List(ctx context.Context, industry string) ([]Company, error) {
	filter := bson.M{}
	if industry != "" {
		filter["industry"] = query.Contains(industry)
	}
	return query.All[Company](ctx, r.Collection, filter, options.Find().SetSort(bson.D{{Key: "companyName", Value: 1}}))
}

func (r *CompanyRepositoryImpl) FindByID(ctx context.Context, id string) (*Company, bool, error) {
	return query.One[Company](ctx, r.Collection, id)
}

func (r *CompanyRepositoryImpl) IndustryNames(ctx context.Context) ([]string, error) {
	type named struct {
		Name string `bson:"name"`
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "_id": 0}).SetSort(bson.D{{Key: "name", Value: 1}})
	items, err := query.All[named](ctx, r.Industries, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, i := range items {
		names = append(names, i.Name)
	}
	return names, nil
}

func (r *CompanyRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger,
		query.Text("companyName", "industry", "email", "phone", "directorCeo"),
		mongo.IndexModel{Keys: bson.D{{Key: "companyName", Value: 1}}},
	)
}
