package startup

import (
	"context"
	"testing"

	"invest-portal/internal/attachment"
	"invest-portal/internal/attachment/attachmenttest"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/recordstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockUserService struct {
	users   map[primitive.ObjectID]*models.User
	links   map[primitive.ObjectID]primitive.ObjectID
	deleted []primitive.ObjectID
}

func newMockUserService() *MockUserService {
	return &MockUserService{
		users: map[primitive.ObjectID]*models.User{},
		links: map[primitive.ObjectID]primitive.ObjectID{},
	}
}

func (m *MockUserService) ListUsers(ctx context.Context, filter map[string]interface{}, q models.PageQuery) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, apperrors.NotFound("User")
}

func (m *MockUserService) CreateUser(ctx context.Context, u *models.User, password string) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperrors.Validation("User already exists")
		}
	}
	u.ID = primitive.NewObjectID()
	m.users[u.ID] = u
	return nil
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return nil, apperrors.Validation("Invalid email or password")
}

func (m *MockUserService) LinkProfile(ctx context.Context, id primitive.ObjectID, field string, profileID primitive.ObjectID) error {
	m.links[id] = profileID
	return nil
}

func (m *MockUserService) SetStatus(ctx context.Context, id string, active bool) error { return nil }

func (m *MockUserService) UpsertAdmin(ctx context.Context, email, password, name string) (*models.User, bool, error) {
	return nil, false, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// memoryRepo answers reads from the in-memory record store behind the manager.
type memoryRepo struct {
	store *recordstore.MemoryStore
}

func (r *memoryRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Startup, error) {
	var found *Startup
	err := r.store.Each(ctx, func(rec recordstore.Record) error {
		if rec["user"] == userID {
			st, err := decode(rec)
			found = st
			return err
		}
		return nil
	})
	return found, err
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*Startup, bool, error) {
	rec, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, false, nil
	}
	st, err := decode(rec)
	return st, err == nil, err
}

func (r *memoryRepo) ListPublic(ctx context.Context) ([]Startup, error) { return nil, nil }

func (r *memoryRepo) EnsureIndexes(ctx context.Context) {}

type nopAudit struct{}

func (nopAudit) LogChange(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) error {
	return nil
}
func (nopAudit) Record(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) {
}
func (nopAudit) ListLogs(ctx context.Context, filters map[string]interface{}, q models.PageQuery) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func str(s string) *string { return &s }

func registration() RegisterInput {
	return RegisterInput{
		StartupInput: StartupInput{
			StartupName: str("Leaf Labs"),
			FounderName: str("Asha"),
			Description: str("Agritech sensors"),
			Industry:    str("Agriculture"),
			Stage:       str("Series A"),
			Email:       str("founder@leaf.example"),
			Phone:       str("+91 99999 00000"),
			TeamSize:    str("6-10"),
		},
		Password:  "secret12",
		Password2: "secret12",
	}
}

func setup(t *testing.T) (*StartupServiceImpl, *attachmenttest.Env, *MockUserService) {
	env := attachmenttest.New(t, nil)
	users := newMockUserService()
	repo := &memoryRepo{store: env.Stores[attachment.CollectionStartups]}
	svc := NewStartupService(repo, env.Registry, users, nopAudit{}, zap.NewNop()).(*StartupServiceImpl)
	return svc, env, users
}

func TestRegister(t *testing.T) {
	svc, env, users := setup(t)

	session, err := svc.Register(context.Background(), registration(), attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.RoleStartup, session.User.Role)
	assert.Equal(t, "Asha", session.User.Name)
	require.Len(t, users.users, 1)
	assert.Contains(t, users.links, session.User.ID)

	st, err := svc.Me(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Series A", st.Stage)
	assert.True(t, env.Exists(st.Logo))
}

func TestRegisterRejectedLogoCreatesNoUser(t *testing.T) {
	tests := []struct {
		name    string
		uploads attachment.Uploads
		kind    apperrors.Kind
	}{
		{"no logo", attachmenttest.Uploads("pitchDeck", "deck.pdf", attachmenttest.PDF), apperrors.KindValidation},
		{"logo is a gif", attachmenttest.Uploads("logo", "logo.gif", []byte("GIF89a\x01\x00\x01\x00")), apperrors.KindUnsupportedFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, env, users := setup(t)

			_, err := svc.Register(context.Background(), registration(), tt.uploads)
			assert.True(t, apperrors.IsKind(err, tt.kind))
			assert.Empty(t, users.users)
			assert.Empty(t, users.deleted)
			assert.Zero(t, env.Files("startups"))
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"password mismatch", func(in *RegisterInput) { in.Password2 = "other123" }},
		{"short password", func(in *RegisterInput) { in.Password, in.Password2 = "abc", "abc" }},
		{"bad stage", func(in *RegisterInput) { in.Stage = str("Series Z") }},
		{"bad team size", func(in *RegisterInput) { in.TeamSize = str("7") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, users := setup(t)
			in := registration()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in, attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			assert.Empty(t, users.users)
		})
	}
}

func TestUpdateMeReplacesLogo(t *testing.T) {
	svc, env, _ := setup(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, registration(), attachmenttest.Uploads("logo", "a.png", attachmenttest.PNG))
	require.NoError(t, err)
	before, err := svc.Me(ctx, session.User.ID)
	require.NoError(t, err)

	in := StartupInput{Description: str("Soil sensors"), Email: str("changed@leaf.example"), Website: str("")}
	after, err := svc.UpdateMe(ctx, session.User.ID, in, attachmenttest.Uploads("logo", "b.jpg", attachmenttest.JPEG))
	require.NoError(t, err)

	assert.Equal(t, "Soil sensors", after.Description)
	assert.Equal(t, "founder@leaf.example", after.Email)
	assert.False(t, env.Exists(before.Logo))
	assert.True(t, env.Exists(after.Logo))
}

func TestDeleteMe(t *testing.T) {
	svc, env, users := setup(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, registration(), attachmenttest.Uploads("logo", "a.png", attachmenttest.PNG))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMe(ctx, session.User.ID))
	assert.Zero(t, env.Files("startups"))
	assert.Empty(t, users.users)

	err = svc.DeleteMe(ctx, session.User.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestVerify(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, registration(), attachmenttest.Uploads("logo", "a.png", attachmenttest.PNG))
	require.NoError(t, err)
	st, err := svc.Me(ctx, session.User.ID)
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, st.ID.Hex())
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	_, err = svc.Verify(ctx, primitive.NewObjectID().Hex())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
