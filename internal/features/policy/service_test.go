package policy

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

type nopRepo struct{}

func (nopRepo) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error) {
	return nil, 0, nil
}
func (nopRepo) Published(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error) {
	return nil, 0, nil
}
func (nopRepo) FindByID(ctx context.Context, id string) (*Policy, bool, error) {
	return nil, false, nil
}
func (nopRepo) EnsureIndexes(ctx context.Context) {}

type MockAudit struct {
	actions []models.AuditAction
}

func (m *MockAudit) LogChange(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) error {
	m.actions = append(m.actions, action)
	return nil
}
func (m *MockAudit) Record(ctx context.Context, action models.AuditAction, module, recordID string, changes map[string]models.Change) {
	m.actions = append(m.actions, action)
}
func (m *MockAudit) ListLogs(ctx context.Context, filters map[string]interface{}, q models.PageQuery) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func str(s string) *string { return &s }

func validInput() PolicyInput {
	return PolicyInput{
		Title:       str("Startup Policy 2024"),
		Category:    str("Government Policy"),
		Description: str("Incentives for registered startups"),
	}
}

func setup(t *testing.T) (*PolicyServiceImpl, *attachmenttest.Env, *MockAudit) {
	env := attachmenttest.New(t, nil)
	a := &MockAudit{}
	return NewPolicyService(nopRepo{}, env.Registry, a).(*PolicyServiceImpl), env, a
}

func TestCreateDefaults(t *testing.T) {
	svc, env, a := setup(t)
	admin := primitive.NewObjectID()

	p, err := svc.Create(context.Background(), validInput(),
		attachmenttest.Uploads("documentFile", "Policy.PDF", attachmenttest.PDF), admin)
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, p.Status)
	assert.False(t, p.PublishedOn.IsZero())
	assert.Equal(t, int64(len(attachmenttest.PDF)), p.FileSize)
	assert.True(t, env.Exists(p.FileURL))
	assert.Contains(t, p.FileURL, "/uploads/policies/")
	require.NotNil(t, p.CreatedBy)
	assert.Equal(t, admin, *p.CreatedBy)
	assert.Equal(t, []models.AuditAction{models.AuditActionCreate}, a.actions)
}

func TestCreateWithoutAuthor(t *testing.T) {
	svc, _, _ := setup(t)

	p, err := svc.Create(context.Background(), validInput(),
		attachmenttest.Uploads("documentFile", "policy.pdf", attachmenttest.PDF), primitive.NilObjectID)
	require.NoError(t, err)
	assert.Nil(t, p.CreatedBy)
}

func TestCreateRequiresDocument(t *testing.T) {
	svc, env, _ := setup(t)

	_, err := svc.Create(context.Background(), validInput(), attachment.Uploads{}, primitive.NilObjectID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, env.Stores[attachment.CollectionPolicies].Len())
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, env, _ := setup(t)
	in := validInput()
	in.Category = str("Rumours")

	_, err := svc.Create(context.Background(), in,
		attachmenttest.Uploads("documentFile", "policy.pdf", attachmenttest.PDF), primitive.NilObjectID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, env.Files("policies"))
}

func TestCreateRejectsImage(t *testing.T) {
	svc, env, _ := setup(t)

	_, err := svc.Create(context.Background(), validInput(),
		attachmenttest.Uploads("documentFile", "scan.png", attachmenttest.PNG), primitive.NilObjectID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnsupportedFileType))
	assert.Zero(t, env.Files("policies"))
}

func TestUpdateReplacesDocument(t *testing.T) {
	svc, env, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(),
		attachmenttest.Uploads("documentFile", "v1.pdf", attachmenttest.PDF), primitive.NilObjectID)
	require.NoError(t, err)

	bigger := append(append([]byte{}, attachmenttest.PDF...), make([]byte, 100)...)
	updated, err := svc.Update(ctx, p.ID.Hex(), PolicyInput{Status: str(StatusPublished)},
		attachmenttest.Uploads("documentFile", "v2.pdf", bigger))
	require.NoError(t, err)

	assert.Equal(t, StatusPublished, updated.Status)
	assert.Equal(t, "Startup Policy 2024", updated.Title)
	assert.NotEqual(t, p.FileURL, updated.FileURL)
	assert.Equal(t, int64(len(bigger)), updated.FileSize)
	assert.False(t, env.Exists(p.FileURL))
	assert.True(t, env.Exists(updated.FileURL))
}

func TestUpdateKeepsDocumentWithoutUpload(t *testing.T) {
	svc, env, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(),
		attachmenttest.Uploads("documentFile", "v1.pdf", attachmenttest.PDF), primitive.NilObjectID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID.Hex(), PolicyInput{Title: str("Renamed")}, nil)
	require.NoError(t, err)
	assert.Equal(t, p.FileURL, updated.FileURL)
	assert.True(t, env.Exists(p.FileURL))
}

func TestUpdateMissingPolicy(t *testing.T) {
	svc, env, _ := setup(t)

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), validInput(),
		attachmenttest.Uploads("documentFile", "v1.pdf", attachmenttest.PDF))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Zero(t, env.Files("policies"))
}

func TestDeleteRemovesDocument(t *testing.T) {
	svc, env, a := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(),
		attachmenttest.Uploads("documentFile", "v1.pdf", attachmenttest.PDF), primitive.NilObjectID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID.Hex()))
	assert.False(t, env.Exists(p.FileURL))
	assert.Zero(t, env.Stores[attachment.CollectionPolicies].Len())
	assert.Contains(t, a.actions, models.AuditActionDelete)

	err = svc.Delete(ctx, p.ID.Hex())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestFilterBSON(t *testing.T) {
	f := ListFilter{Search: "tax", Category: "all"}.bson()
	assert.NotContains(t, f, "category")
	assert.Contains(t, f, "$text")

	f = ListFilter{Category: "Standards", Status: StatusPublished}.bson()
	assert.Equal(t, "Standards", f["category"])
	assert.Equal(t, StatusPublished, f["status"])
}
