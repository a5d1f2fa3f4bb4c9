package gallery

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

type GalleryRepository interface {
	List(ctx context.Context, search string, q models.PageQuery) ([]Image, int64, error)
	// Active lists visible images by order, newest first within an order.
	Active(ctx context.Context) ([]Image, error)
	FindByID(ctx context.Context, id string) (*Image, bool, error)
	EnsureIndexes(ctx context.Context)
}

type GalleryRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewGalleryRepository(mongodb *database.MongodbDB, logger *zap.Logger) GalleryRepository {
	return &GalleryRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionGallery),
		Logger:     logger,
	}
}

func (r *GalleryRepositoryImpl) List(ctx context.Context, search string, q models.PageQuery) ([]Image, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["$or"] = query.AnyOf(search, "title", "description")
	}
	return query.Page[Image](ctx, r.Collection, filter, bson.D{{Key: "createdAt", Value: -1}}, q)
}

func (r *GalleryRepositoryImpl) Active(ctx context.Context) ([]Image, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}})
	return query.All[Image](ctx, r.Collection, bson.M{"isActive": true}, opts)
}

func (r *GalleryRepositoryImpl) FindByID(ctx context.Context, id string) (*Image, bool, error) {
	return query.One[Image](ctx, r.Collection, id)
}

func (r *GalleryRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger, mongo.IndexModel{
		Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "order", Value: 1}, {Key: "createdAt", Value: -1}},
	})
}
