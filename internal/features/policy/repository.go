package policy

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type PolicyRepository interface {
	List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error)
	// Published lists published policies, newest publishedOn first.
	Published(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error)
	FindByID(ctx context.Context, id string) (*Policy, bool, error)
	EnsureIndexes(ctx context.Context)
}

type PolicyRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewPolicyRepository(mongodb *database.MongodbDB, logger *zap.Logger) PolicyRepository {
	return &PolicyRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionPolicies),
		Logger:     logger,
	}
}

func (f ListFilter) bson() bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" && f.Category != "all" {
		filter["category"] = f.Category
	}
	return filter
}

func (r *PolicyRepositoryImpl) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error) {
	return r.page(ctx, f.bson(), bson.D{{Key: "createdAt", Value: -1}}, q)
}

func (r *PolicyRepositoryImpl) Published(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error) {
	f.Status = StatusPublished
	return r.page(ctx, f.bson(), bson.D{{Key: "publishedOn", Value: -1}}, q)
}

func (r *PolicyRepositoryImpl) FindByID(ctx context.Context, id string) (*Policy, bool, error) {
	oid, ok := query.ObjectID(id)
	if !ok {
		return nil, false, nil
	}
	items, err := r.aggregate(ctx, mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": oid}}}})
	if err != nil || len(items) == 0 {
		return nil, false, err
	}
	return &items[0], true, nil
}

func (r *PolicyRepositoryImpl) page(ctx context.Context, filter bson.M, sort bson.D, q models.PageQuery) ([]Policy, int64, error) {
	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: q.Skip()}},
		{{Key: "$limit", Value: q.Limit}},
	})
	return items, total, err
}

// aggregate runs stages followed by the createdBy lookup.
func (r *PolicyRepositoryImpl) aggregate(ctx context.Context, stages mongo.Pipeline) ([]Policy, error) {
	pipeline := append(stages,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "createdBy",
			"foreignField": "_id",
			"as":           "author",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"name": 1, "email": 1}}},
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
	)

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []Policy{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PolicyRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger,
		query.Text("title", "description", "tags"),
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "publishedOn", Value: -1}}},
	)
}
