package auth

import (
	"context"
	"testing"

	"invest-portal/internal/attachment"
	"invest-portal/internal/attachment/attachmenttest"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/features/company"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, filter map[string]interface{}, q models.PageQuery) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, u *models.User, password string) error {
	args := m.Called(ctx, u, password)
	return args.Error(0)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) LinkProfile(ctx context.Context, id primitive.ObjectID, field string, profileID primitive.ObjectID) error {
	args := m.Called(ctx, id, field, profileID)
	return args.Error(0)
}

func (m *MockUserService) SetStatus(ctx context.Context, id string, active bool) error { return nil }

func (m *MockUserService) UpsertAdmin(ctx context.Context, email, password, name string) (*models.User, bool, error) {
	return nil, false, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type nopCompanyRepo struct{}

func (nopCompanyRepo) List(ctx context.Context, industry string) ([]company.Company, error) {
	return nil, nil
}
func (nopCompanyRepo) FindByID(ctx context.Context, id string) (*company.Company, bool, error) {
	return nil, false, nil
}
func (nopCompanyRepo) IndustryNames(ctx context.Context) ([]string, error) { return nil, nil }
func (nopCompanyRepo) EnsureIndexes(ctx context.Context)                   {}

type recordingAudit struct {
	actions []models.AuditAction
}

func (a *recordingAudit) LogChange(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) error {
	a.actions = append(a.actions, action)
	return nil
}
func (a *recordingAudit) Record(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) {
	_ = a.LogChange(ctx, action, module, recordID, changes)
}
func (a *recordingAudit) ListLogs(ctx context.Context, filters map[string]interface{}, q models.PageQuery) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func str(s string) *string { return &s }

func registration() RegisterInput {
	return RegisterInput{
		CompanyInput: company.CompanyInput{
			CompanyName: str("Acme Textiles"),
			DirectorCeo: str("R. Rao"),
			Email:       str("Info@Acme.example"),
			Phone:       str("9876543210"),
			Industry:    str("Textiles"),
		},
		Password:  "secret12",
		Password2: "secret12",
	}
}

func setup(t *testing.T) (*AuthServiceImpl, *attachmenttest.Env, *MockUserService, *recordingAudit) {
	env := attachmenttest.New(t, nil)
	users := &MockUserService{}
	audit := &recordingAudit{}
	companies := company.NewCompanyService(nopCompanyRepo{}, env.Registry, audit)
	svc := NewAuthService(users, companies, audit, zap.NewNop()).(*AuthServiceImpl)
	return svc, env, users, audit
}

func assignID(id primitive.ObjectID) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = id
	}
}

func TestRegisterCompany(t *testing.T) {
	svc, env, users, _ := setup(t)
	userID := primitive.NewObjectID()

	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "info@acme.example" && u.Role == models.RoleCompany && u.Name == "Acme Textiles"
	}), "secret12").Run(assignID(userID)).Return(nil)
	users.On("LinkProfile", mock.Anything, userID, "company", mock.AnythingOfType("primitive.ObjectID")).Return(nil)

	session, err := svc.RegisterCompany(context.Background(), registration(),
		attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, userID, session.User.ID)
	assert.Equal(t, models.RoleCompany, session.User.Role)
	assert.Equal(t, 1, env.Stores[attachment.CollectionCompanies].Len())
	assert.Equal(t, 1, env.Files("companies"))
	users.AssertExpectations(t)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, env, users, _ := setup(t)
	in := registration()
	in.Password2 = "other123"

	_, err := svc.RegisterCompany(context.Background(), in, attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, env.Files("companies"))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, users, _ := setup(t)
	in := registration()
	in.Password, in.Password2 = "abc", "abc"

	_, err := svc.RegisterCompany(context.Background(), in, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterRejectedProfileCreatesNoUser(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		uploads attachment.Uploads
		kind    apperrors.Kind
	}{
		{"missing phone", func(in *RegisterInput) { in.Phone = nil },
			attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG), apperrors.KindValidation},
		{"logo is a pdf", func(in *RegisterInput) {},
			attachmenttest.Uploads("logo", "logo.pdf", attachmenttest.PDF), apperrors.KindUnsupportedFileType},
		{"oversized banner", func(in *RegisterInput) {},
			attachmenttest.Uploads("banner", "banner.png", append(append([]byte{}, attachmenttest.PNG...), make([]byte, 6*attachment.MB)...)),
			apperrors.KindFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, env, users, _ := setup(t)
			in := registration()
			tt.mutate(&in)

			_, err := svc.RegisterCompany(context.Background(), in, tt.uploads)
			assert.True(t, apperrors.IsKind(err, tt.kind))
			assert.Zero(t, env.Files("companies"))
			users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterRemovesUserWhenProfileWriteFails(t *testing.T) {
	env := attachmenttest.New(t, map[string][]string{attachment.CollectionCompanies: {"email"}})
	users := &MockUserService{}
	audit := &recordingAudit{}
	companies := company.NewCompanyService(nopCompanyRepo{}, env.Registry, audit)
	svc := NewAuthService(users, companies, audit, zap.NewNop())

	_, err := companies.Create(context.Background(), registration().CompanyInput, nil)
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	users.On("CreateUser", mock.Anything, mock.Anything, "secret12").Run(assignID(userID)).Return(nil)
	users.On("DeleteUser", mock.Anything, userID).Return(nil)

	_, err = svc.RegisterCompany(context.Background(), registration(), attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStoreWrite))
	assert.Zero(t, env.Files("companies"))
	assert.Equal(t, 1, env.Stores[attachment.CollectionCompanies].Len())
	users.AssertCalled(t, "DeleteUser", mock.Anything, userID)
	users.AssertNotCalled(t, "LinkProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, env, users, _ := setup(t)
	users.On("CreateUser", mock.Anything, mock.Anything, "secret12").Return(apperrors.Validation("User already exists"))

	_, err := svc.RegisterCompany(context.Background(), registration(), attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.(*apperrors.Error).Message)
	assert.Zero(t, env.Files("companies"))
}

func TestLoginRecordsAudit(t *testing.T) {
	svc, _, users, audit := setup(t)
	u := &models.User{ID: primitive.NewObjectID(), Email: "admin@portal.example", Role: models.RoleAdmin, IsActive: true}
	users.On("Authenticate", mock.Anything, "admin@portal.example", "pw").Return(u, nil)

	session, err := svc.Login(context.Background(), LoginInput{Email: " Admin@Portal.example ", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, []models.AuditAction{models.AuditActionLogin}, audit.actions)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, users, audit := setup(t)
	users.On("Authenticate", mock.Anything, "x@y.example", "bad").Return(nil, apperrors.Validation("Invalid email or password"))

	_, err := svc.Login(context.Background(), LoginInput{Email: "x@y.example", Password: "bad"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, audit.actions)
}

func TestLoginRequiresFields(t *testing.T) {
	svc, _, users, _ := setup(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "x@y.example"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}
