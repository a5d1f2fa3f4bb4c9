package user

import (
	"context"
	"testing"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, _ := primitive.ObjectIDFromHex(id)
	if u, ok := m.users[oid]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	return nil, nil
}

func (m *MockUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (m *MockUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if v, ok := fields["password"].(string); ok {
		u.Password = v
	}
	if v, ok := fields["role"].(string); ok {
		u.Role = v
	}
	if v, ok := fields["isActive"].(bool); ok {
		u.IsActive = v
	}
	return nil
}

func (m *MockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	return nil
}

func (m *MockUserRepo) EnsureIndexes(ctx context.Context) {}

type MockAudit struct{ calls int }

func (m *MockAudit) LogChange(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) error {
	m.calls++
	return nil
}

func (m *MockAudit) Record(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) {
	m.calls++
}

func (m *MockAudit) ListLogs(ctx context.Context, filters map[string]interface{}, q models.PageQuery) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	svc := NewUserService(repo, &MockAudit{})

	u := &models.User{Email: " Owner@Acme.in ", Name: "Acme", Role: models.RoleCompany}
	require.NoError(t, svc.CreateUser(ctx, u, "secret1"))
	assert.Equal(t, "owner@acme.in", u.Email)
	assert.NotEqual(t, "secret1", u.Password)

	err := svc.CreateUser(ctx, &models.User{Email: "owner@acme.in"}, "x")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	got, err := svc.Authenticate(ctx, "owner@acme.in", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "owner@acme.in", "wrong")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	require.NoError(t, svc.SetStatus(ctx, u.ID.Hex(), false))
	_, err = svc.Authenticate(ctx, "owner@acme.in", "secret1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestUpsertAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepo()
	svc := NewUserService(repo, &MockAudit{})

	admin, created, err := svc.UpsertAdmin(ctx, "admin@gmail.com", "admin123", "Super Admin")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)

	_, created, err = svc.UpsertAdmin(ctx, "admin@gmail.com", "changed1", "Super Admin")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Authenticate(ctx, "admin@gmail.com", "changed1")
	assert.NoError(t, err)
}
