package audit

import (
	"context"
	"errors"
	"testing"

	common_models "invest-portal/internal/common/models"
	"invest-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockAuditRepo struct {
	logs []common_models.AuditLog
	err  error
}

func (m *MockAuditRepo) Create(ctx context.Context, log common_models.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepo) List(ctx context.Context, filters map[string]interface{}, q common_models.PageQuery) ([]common_models.AuditLog, int64, error) {
	return m.logs, int64(len(m.logs)), nil
}

func (m *MockAuditRepo) EnsureIndexes(ctx context.Context) {}

type MockUserFinder struct {
	users []common_models.User
}

func (m *MockUserFinder) FindByIDs(ctx context.Context, ids []string) ([]common_models.User, error) {
	return m.users, nil
}

func TestLogChangeUsesActorFromContext(t *testing.T) {
	repo := &MockAuditRepo{}
	svc := NewAuditService(repo, &MockUserFinder{}, zap.NewNop())

	ctx := context.WithValue(context.Background(), utils.UserClaimsKey, &utils.UserClaims{UserID: "u1"})
	require.NoError(t, svc.LogChange(ctx, common_models.AuditActionCreate, "members", "r1", nil))
	require.NoError(t, svc.LogChange(context.Background(), common_models.AuditActionSweep, "attachments", "", nil))

	require.Len(t, repo.logs, 2)
	assert.Equal(t, "u1", repo.logs[0].ActorID)
	assert.Equal(t, "system", repo.logs[1].ActorID)
}

func TestRecordSwallowsErrors(t *testing.T) {
	svc := NewAuditService(&MockAuditRepo{err: errors.New("down")}, &MockUserFinder{}, zap.NewNop())
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), common_models.AuditActionDelete, "gallery", "x", nil)
	})
}

func TestListLogsPopulatesActorNames(t *testing.T) {
	uid := primitive.NewObjectID()
	repo := &MockAuditRepo{logs: []common_models.AuditLog{
		{ActorID: uid.Hex()},
		{ActorID: "system"},
		{ActorID: "ghost"},
	}}
	svc := NewAuditService(repo, &MockUserFinder{users: []common_models.User{{ID: uid, Name: "Admin"}}}, zap.NewNop())

	logs, total, err := svc.ListLogs(context.Background(), nil, common_models.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "Admin", logs[0].ActorName)
	assert.Equal(t, "System", logs[1].ActorName)
	assert.Equal(t, "Unknown User", logs[2].ActorName)
}

func TestDiff(t *testing.T) {
	changes := Diff(
		map[string]interface{}{"title": "a", "order": 1, "updatedAt": 1},
		map[string]interface{}{"title": "b", "order": 1, "updatedAt": 2, "tags": []interface{}{"x"}},
	)
	assert.Len(t, changes, 2)
	assert.Equal(t, "a", changes["title"].Old)
	assert.Nil(t, changes["tags"].Old)
}
