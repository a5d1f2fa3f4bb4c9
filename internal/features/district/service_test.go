package district

import (
	"context"
	"testing"

	"invest-portal/internal/attachment"
	"invest-portal/internal/attachment/attachmenttest"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopRepo struct{}

func (nopRepo) List(ctx context.Context) ([]District, error)                   { return nil, nil }
func (nopRepo) FindByName(ctx context.Context, name string) (*District, error) { return nil, nil }
func (nopRepo) Refs(ctx context.Context) ([]Ref, error)                        { return nil, nil }

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

func photos(names ...string) attachment.Uploads {
	u := attachment.Uploads{}
	for _, n := range names {
		u.Add("awardsPhotos", attachment.FromBytes(n, attachmenttest.JPEG))
	}
	return u
}

func setup(t *testing.T) (*DistrictServiceImpl, *attachmenttest.Env) {
	env := attachmenttest.New(t, nil)
	return NewDistrictService(nopRepo{}, env.Registry, nopAudit{}).(*DistrictServiceImpl), env
}

func TestCreateDefaults(t *testing.T) {
	svc, env := setup(t)

	d, err := svc.Create(context.Background(), DistrictInput{DistrictName: str("Pune")}, photos("a.jpg", "b.jpg"))
	require.NoError(t, err)

	assert.Equal(t, "None", d.RailConnectivity)
	assert.Empty(t, d.PrimaryLanguages)
	require.Len(t, d.AwardsPhotos, 2)
	for _, p := range d.AwardsPhotos {
		assert.Regexp(t, `^/uploads/awardsPhotos/`, p)
		assert.True(t, env.Exists(p))
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, env := setup(t)

	_, err := svc.Create(context.Background(), DistrictInput{State: str("MH")}, photos("a.jpg"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, env.Files("awardsPhotos"))
}

func TestCreateRejectsBadRail(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Create(context.Background(), DistrictInput{DistrictName: str("Pune"), RailConnectivity: str("Metro")}, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateAppendsPhotos(t *testing.T) {
	svc, env := setup(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, DistrictInput{DistrictName: str("Pune")}, photos("a.jpg"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID.Hex(), DistrictInput{Population: ptr(9.4e6)}, photos("b.jpg"))
	require.NoError(t, err)

	assert.Equal(t, 9.4e6, updated.Population)
	require.Len(t, updated.AwardsPhotos, 2)
	assert.Equal(t, d.AwardsPhotos[0], updated.AwardsPhotos[0])
	assert.Equal(t, 2, env.Files("awardsPhotos"))
}

func TestUpdateReplacesPhotoList(t *testing.T) {
	svc, env := setup(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, DistrictInput{DistrictName: str("Pune")}, photos("a.jpg", "b.jpg"))
	require.NoError(t, err)
	keep := d.AwardsPhotos[1]

	updated, err := svc.Update(ctx, d.ID.Hex(), DistrictInput{AwardsPhotos: &[]string{keep}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{keep}, updated.AwardsPhotos)
	assert.False(t, env.Exists(d.AwardsPhotos[0]))
	assert.True(t, env.Exists(keep))
}

func TestDeleteRemovesPhotos(t *testing.T) {
	svc, env := setup(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, DistrictInput{DistrictName: str("Pune")}, photos("a.jpg", "b.jpg"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, d.ID.Hex()))
	assert.Zero(t, env.Files("awardsPhotos"))
}

func ptr[T any](v T) *T { return &v }
