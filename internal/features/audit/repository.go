package audit

import (
	"context"

	common_models "invest-portal/internal/common/models"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type AuditRepository interface {
	Create(ctx context.Context, log common_models.AuditLog) error
	List(ctx context.Context, filters map[string]interface{}, q common_models.PageQuery) ([]common_models.AuditLog, int64, error)
	EnsureIndexes(ctx context.Context)
}

type AuditRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewAuditRepository(mongodb *database.MongodbDB, logger *zap.Logger) AuditRepository {
	return &AuditRepositoryImpl{
		Collection: mongodb.DB.Collection("audit_logs"),
		Logger:     logger,
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log common_models.AuditLog) error {
	_, err := r.Collection.InsertOne(ctx, log)
	return err
}

// List pages through logs newest first; empty filter values are ignored.
func (r *AuditRepositoryImpl) List(ctx context.Context, filters map[string]interface{}, q common_models.PageQuery) ([]common_models.AuditLog, int64, error) {
	filter := bson.M{}
	for k, v := range filters {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && str == "" {
			continue
		}
		filter[k] = v
	}
	return query.Page[common_models.AuditLog](ctx, r.Collection, filter, bson.D{{Key: "timestamp", Value: -1}}, q)
}

func (r *AuditRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger,
		mongo.IndexModel{Keys: bson.D{{Key: "module", Value: 1}, {Key: "record_id", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	)
}
