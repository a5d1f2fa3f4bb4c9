package company

import (
	"context"
	"testing"

	"invest-portal/internal/attachment"
	"invest-portal/internal/attachment/attachmenttest"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockCompanyRepo struct{}

func (m *MockCompanyRepo) List(ctx context.Context, industry string) ([]Company, error) {
	return nil, nil
}

func (m *MockCompanyRepo) FindByID(ctx context.Context, id string) (*Company, bool, error) {
	return nil, false, nil
}

func (m *MockCompanyRepo) IndustryNames(ctx context.Context) ([]string, error) {
	return []string{"Textiles"}, nil
}

func (m *MockCompanyRepo) EnsureIndexes(ctx context.Context) {}

type MockAudit struct {
	actions []models.AuditAction
}

func (m *MockAudit) LogChange(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) error {
	m.actions = append(m.actions, action)
	return nil
}

func (m *MockAudit) Record(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) {
	_ = m.LogChange(ctx, action, module, recordID, changes)
}

func (m *MockAudit) ListLogs(ctx context.Context, filters map[string]interface{}, q models.PageQuery) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func str(s string) *string { return &s }

func validInput() CompanyInput {
	return CompanyInput{
		CompanyName: str("  Acme Textiles "),
		ContactName: str("R. Rao"),
		Email:       str("INFO@Acme.example"),
		Phone:       str("9876543210"),
		Industry:    str("Textiles"),
	}
}

func setup(t *testing.T) (*CompanyServiceImpl, *attachmenttest.Env, *MockAudit) {
	env := attachmenttest.New(t, nil)
	audit := &MockAudit{}
	svc := NewCompanyService(&MockCompanyRepo{}, env.Registry, audit).(*CompanyServiceImpl)
	return svc, env, audit
}

func TestInputFields(t *testing.T) {
	fields := validInput().Fields()

	assert.Equal(t, "Acme Textiles", fields["companyName"])
	assert.Equal(t, "R. Rao", fields["directorCeo"], "contactName falls back to directorCeo")
	assert.Equal(t, "info@acme.example", fields["email"])
	assert.NotContains(t, fields, "website")
}

func TestCreateWithLogo(t *testing.T) {
	svc, env, audit := setup(t)

	c, err := svc.Create(context.Background(), validInput(), attachmenttest.Uploads("logo", "Logo.PNG", attachmenttest.PNG))
	require.NoError(t, err)

	assert.False(t, c.ID.IsZero())
	assert.True(t, c.IsActive)
	assert.False(t, c.IsVerified)
	assert.Nil(t, c.User)
	assert.Regexp(t, `^/uploads/companies/Logo-\d+-\d+\.png$`, c.Logo)
	assert.True(t, env.Exists(c.Logo))
	assert.Equal(t, []models.AuditAction{models.AuditActionCreate}, audit.actions)
}

func TestCreateForUserSetsOwner(t *testing.T) {
	svc, _, _ := setup(t)
	userID := primitive.NewObjectID()

	c, err := svc.CreateForUser(context.Background(), userID, validInput(), nil)
	require.NoError(t, err)
	require.NotNil(t, c.User)
	assert.Equal(t, userID, *c.User)
}

func TestCreateMissingRequiredLeavesNoFiles(t *testing.T) {
	svc, env, _ := setup(t)
	in := validInput()
	in.Phone = nil

	_, err := svc.Create(context.Background(), in, attachmenttest.Uploads("logo", "logo.png", attachmenttest.PNG))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, env.Files("companies"))
	assert.Zero(t, env.Stores[attachment.CollectionCompanies].Len())
}

func TestCreateRejectsBadEmail(t *testing.T) {
	svc, _, _ := setup(t)
	in := validInput()
	in.Email = str("not-an-email")

	_, err := svc.Create(context.Background(), in, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateReplacesLogoAndVerify(t *testing.T) {
	svc, env, audit := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, validInput(), attachmenttest.Uploads("logo", "a.png", attachmenttest.PNG))
	require.NoError(t, err)
	oldLogo := c.Logo

	updated, err := svc.Update(ctx, c.ID.Hex(), CompanyInput{City: str("Pune")}, attachmenttest.Uploads("logo", "b.jpg", attachmenttest.JPEG), nil)
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.City)
	assert.NotEqual(t, oldLogo, updated.Logo)
	assert.False(t, env.Exists(oldLogo))
	assert.True(t, env.Exists(updated.Logo))

	verified, err := svc.Verify(ctx, c.ID.Hex(), true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, updated.Logo, verified.Logo)
	assert.Len(t, audit.actions, 3)
}

func TestDeleteRemovesFiles(t *testing.T) {
	svc, env, _ := setup(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, validInput(), attachmenttest.Uploads("banner", "b.png", attachmenttest.PNG))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID.Hex()))
	assert.False(t, env.Exists(c.Banner))

	err = svc.Delete(ctx, c.ID.Hex())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
