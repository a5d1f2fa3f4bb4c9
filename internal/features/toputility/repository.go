package toputility

import (
	"context"
	"time"

	"invest-portal/internal/common/query"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type TopUtilityRepository interface {
	// ActiveConfig returns nil when no active config exists.
	ActiveConfig(ctx context.Context) (*Config, error)
	SaveConfig(ctx context.Context, cfg *Config) error
	ActiveAnnouncements(ctx context.Context) ([]Announcement, error)
	CreateAnnouncement(ctx context.Context, a *Announcement) error
	// UpdateAnnouncement reports false when id does not exist.
	UpdateAnnouncement(ctx context.Context, id primitive.ObjectID, set bson.M) (*Announcement, bool, error)
	DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) (bool, error)
	Reorder(ctx context.Context, orders map[primitive.ObjectID]int) error
	EnsureIndexes(ctx context.Context)
}

type TopUtilityRepositoryImpl struct {
	Configs       *mongo.Collection
	Announcements *mongo.Collection
	Logger        *zap.Logger
}

func NewTopUtilityRepository(mongodb *database.MongodbDB, logger *zap.Logger) TopUtilityRepository {
	return &TopUtilityRepositoryImpl{
		Configs:       mongodb.DB.Collection("toputilityconfigs"),
		Announcements: mongodb.DB.Collection("announcements"),
		Logger:        logger,
	}
}

func (r *TopUtilityRepositoryImpl) ActiveConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	err := r.Configs.FindOne(ctx, bson.M{"isActive": true}).Decode(&cfg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *TopUtilityRepositoryImpl) SaveConfig(ctx context.Context, cfg *Config) error {
	if cfg.ID.IsZero() {
		cfg.ID = primitive.NewObjectID()
	}
	filter := bson.M{"_id": cfg.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.Configs.ReplaceOne(ctx, filter, cfg, opts)
	return err
}

func (r *TopUtilityRepositoryImpl) ActiveAnnouncements(ctx context.Context) ([]Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	return query.All[Announcement](ctx, r.Announcements, bson.M{"isActive": true}, opts)
}

func (r *TopUtilityRepositoryImpl) CreateAnnouncement(ctx context.Context, a *Announcement) error {
	res, err := r.Announcements.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TopUtilityRepositoryImpl) UpdateAnnouncement(ctx context.Context, id primitive.ObjectID, set bson.M) (*Announcement, bool, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a Announcement
	err := r.Announcements.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &a, true, nil
}

func (r *TopUtilityRepositoryImpl) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.Announcements.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Reorder writes every order in one unordered bulk write.
func (r *TopUtilityRepositoryImpl) Reorder(ctx context.Context, orders map[primitive.ObjectID]int) error {
	models := make([]mongo.WriteModel, 0, len(orders))
	now := time.Now()
	for id, order := range orders {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": order, "updatedAt": now}}))
	}
	_, err := r.Announcements.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *TopUtilityRepositoryImpl) EnsureIndexes(ctx context.Context) {
	query.EnsureIndexes(ctx, r.Announcements, r.Logger, mongo.IndexModel{
		Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "order", Value: 1}},
	})
}
