package member

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

type MemberRepository interface {
	List(ctx context.Context) ([]Member, error)
	ListPublic(ctx context.Context) ([]PublicMember, error)
	FindByID(ctx context.Context, id string) (*Member, bool, error)
	EnsureIndexes(ctx context.Context)
}

type MemberRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewMemberRepository(mongodb *database.MongodbDB, logger *zap.Logger) MemberRepository {
	return &MemberRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionMembers),
		Logger:     logger,
	}
}

var byPriority = bson.D{{Key: "priority", Value: 1}, {Key: "fullName", Value: 1}}

func (r *MemberRepositoryImpl) List(ctx context.Context) ([]Member, error) {
	return query.All[Member](ctx, r.Collection, bson.M{}, options.Find().SetSort(byPriority))
}

func (r *MemberRepositoryImpl) ListPublic(ctx context.Context) ([]PublicMember, error) {
	return query.All[PublicMember](ctx, r.Collection, bson.M{"isActive": true}, options.Find().SetSort(byPriority))
}

func (r *MemberRepositoryImpl) FindByID(ctx context.Context, id string) (*Member, bool, error) {
	return query.One[Member](ctx, r.Collection, id)
}

func (r *MemberRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger,
		query.Text("fullName", "designation"),
		mongo.IndexModel{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "priority", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "department", Value: 1}}},
	)
}
