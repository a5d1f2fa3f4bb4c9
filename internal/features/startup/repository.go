package startup

import (
	"context"
	"errors"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type StartupRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*Startup, error)
	FindByID(ctx context.Context, id string) (*Startup, bool, error)
	ListPublic(ctx context.Context) ([]Startup, error)
	EnsureIndexes(ctx context.Context)
}

type StartupRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewStartupRepository(mongodb *database.MongodbDB, logger *zap.Logger) StartupRepository {
	return &StartupRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionStartups),
		Logger:     logger,
	}
}

// FindByUser returns nil, nil when the user has no startup profile.
func (r *StartupRepositoryImpl) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Startup, error) {
	var s Startup
	err := r.Collection.FindOne(ctx, bson.M{"user": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StartupRepositoryImpl) FindByID(ctx context.Context, id string) (*Startup, bool, error) {
	return query.One[Startup](ctx, r.Collection, id)
}

func (r *StartupRepositoryImpl) ListPublic(ctx context.Context) ([]Startup, error) {
	filter := bson.M{"isVerified": true, "isActive": true}
	return query.All[Startup](ctx, r.Collection, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *StartupRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger,
		query.Text("startupName", "description", "industry", "email", "founderName"),
		mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}},
	)
}
