package popup

import (
	"context"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type PopupRepository interface {
	List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Popup, int64, error)
	// Active returns popups that should be shown at now.
	Active(ctx context.Context, now time.Time) ([]Popup, error)
	FindByID(ctx context.Context, id string) (*Popup, bool, error)
	EnsureIndexes(ctx context.Context)
}

type PopupRepositoryImpl struct {
	Collection *mongo.Collection
	Logger     *zap.Logger
}

func NewPopupRepository(mongodb *database.MongodbDB, logger *zap.Logger) PopupRepository {
	return &PopupRepositoryImpl{
		Collection: mongodb.DB.Collection(attachment.CollectionPopups),
		Logger:     logger,
	}
}

func (f ListFilter) bson() bson.M {
	filter := bson.M{}
	if f.Enabled != nil {
		filter["enabled"] = *f.Enabled
	}
	if f.Search != "" {
		filter["$or"] = query.AnyOf(f.Search, "title", "description")
	}
	return filter
}

// activeFilter matches enabled popups inside their date range whose daily
// window, if any, contains the local clock time of now.
func activeFilter(now time.Time) bson.M {
	clock := now.Format("15:04")
	return bson.M{
		"enabled":   true,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gte": now},
		"$or": bson.A{
			bson.M{"dailySchedule.enabled": bson.M{"$ne": true}},
			bson.M{
				"dailySchedule.enabled":   true,
				"dailySchedule.startTime": bson.M{"$lte": clock},
				"dailySchedule.endTime":   bson.M{"$gte": clock},
			},
		},
	}
}

func (r *PopupRepositoryImpl) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Popup, int64, error) {
	sort := bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: -1}}
	return query.Page[Popup](ctx, r.Collection, f.bson(), sort, q)
}

func (r *PopupRepositoryImpl) Active(ctx context.Context, now time.Time) ([]Popup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}})
	return query.All[Popup](ctx, r.Collection, activeFilter(now), opts)
}

func (r *PopupRepositoryImpl) FindByID(ctx context.Context, id string) (*Popup, bool, error) {
	return query.One[Popup](ctx, r.Collection, id)
}

func (r *PopupRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Collection, r.Logger, mongo.IndexModel{
		Keys: bson.D{
			{Key: "enabled", Value: 1},
			{Key: "priority", Value: -1},
			{Key: "startDate", Value: 1},
			{Key: "endDate", Value: 1},
		},
	})
}
