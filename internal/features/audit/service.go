package audit

import (
	"context"
	"reflect"
	"time"

	common_models "invest-portal/internal/common/models"
	"invest-portal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]common_models.User, error)
}

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error
	// Record logs the change and swallows the error; audit failures never fail a request.
	Record(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change)
	ListLogs(ctx context.Context, filters map[string]interface{}, q common_models.PageQuery) ([]common_models.AuditLog, int64, error)
}

type AuditServiceImpl struct {
	Repo     AuditRepository
	UserRepo UserFinder
	Logger   *zap.Logger
}

func NewAuditService(repo AuditRepository, userRepo UserFinder, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{
		Repo:     repo,
		UserRepo: userRepo,
		Logger:   logger,
	}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	actorID := "system"
	if claims, ok := utils.ClaimsFromContext(ctx); ok {
		actorID = claims.UserID
	}

	log := common_models.AuditLog{
		ID:        primitive.NewObjectID(),
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		ActorID:   actorID,
		Changes:   changes,
		Timestamp: time.Now(),
	}

	return s.Repo.Create(ctx, log)
}

func (s *AuditServiceImpl) Record(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) {
	if err := s.LogChange(ctx, action, module, recordID, changes); err != nil {
		s.Logger.Warn("Failed to write audit log",
			zap.String("action", string(action)),
			zap.String("module", module),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, filters map[string]interface{}, q common_models.PageQuery) ([]common_models.AuditLog, int64, error) {
	logs, total, err := s.Repo.List(ctx, filters, q)
	if err != nil {
		return nil, 0, err
	}

	actorIDs := make([]string, 0)
	uniqueIDs := make(map[string]bool)
	for _, log := range logs {
		if log.ActorID != "system" && log.ActorID != "" && !uniqueIDs[log.ActorID] {
			uniqueIDs[log.ActorID] = true
			actorIDs = append(actorIDs, log.ActorID)
		}
	}

	userMap := make(map[string]string)
	if len(actorIDs) > 0 {
		users, err := s.UserRepo.FindByIDs(ctx, actorIDs)
		if err == nil {
			for _, user := range users {
				userMap[user.ID.Hex()] = user.Name
			}
		}
	}

	for i, log := range logs {
		if log.ActorID == "system" || log.ActorID == "" {
			logs[i].ActorName = "System"
		} else if name, ok := userMap[log.ActorID]; ok {
			logs[i].ActorName = name
		} else {
			logs[i].ActorName = "Unknown User"
		}
	}

	return logs, total, nil
}

// Diff returns old/new pairs for every key whose value changed.
func Diff(before, after map[string]interface{}) map[string]common_models.Change {
	changes := map[string]common_models.Change{}
	for k, v := range after {
		if k == "updatedAt" || k == "createdAt" {
			continue
		}
		if old, ok := before[k]; !ok || !reflect.DeepEqual(old, v) {
			changes[k] = common_models.Change{Old: before[k], New: v}
		}
	}
	return changes
}
