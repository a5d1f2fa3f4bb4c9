package popup

import (
	"context"
	"testing"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/attachment/attachmenttest"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type nopRepo struct{}

func (nopRepo) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Popup, int64, error) {
	return nil, 0, nil
}
func (nopRepo) Active(ctx context.Context, now time.Time) ([]Popup, error) { return nil, nil }
func (nopRepo) FindByID(ctx context.Context, id string) (*Popup, bool, error) {
	return nil, false, nil
}
func (nopRepo) EnsureIndexes(ctx context.Context) {}

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

func date(s string) *formdata.Date {
	t, err := formdata.ParseTime(s)
	if err != nil {
		panic(err)
	}
	return &formdata.Date{Time: t}
}

func validInput() PopupInput {
	return PopupInput{
		Title:       str("Investor Summit"),
		Description: str("Register before seats run out"),
		StartDate:   date("2026-01-01"),
		EndDate:     date("2026-12-31"),
	}
}

func setup(t *testing.T) (*PopupServiceImpl, *attachmenttest.Env) {
	env := attachmenttest.New(t, nil)
	return NewPopupService(nopRepo{}, env.Registry, nopAudit{}).(*PopupServiceImpl), env
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := setup(t)

	p, err := svc.Create(context.Background(), validInput(), nil)
	require.NoError(t, err)

	assert.True(t, p.Enabled)
	assert.True(t, p.Closable)
	assert.Equal(t, "color", p.BackgroundType)
	assert.Equal(t, "#ffffff", p.BackgroundColor)
	assert.Empty(t, p.BackgroundImage)
	assert.False(t, p.DailySchedule.Enabled)
	assert.Empty(t, p.CTAs)
}

func TestCreateRequiresDates(t *testing.T) {
	svc, _ := setup(t)
	in := validInput()
	in.StartDate, in.EndDate = nil, nil

	_, err := svc.Create(context.Background(), in, nil)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "startDate")
	assert.Contains(t, appErr.Fields, "endDate")
}

func TestCreateValidation(t *testing.T) {
	cases := map[string]func(*PopupInput){
		"cta url":          func(in *PopupInput) { in.CTAs = &[]CTA{{Text: "Go", URL: "ftp://example.com"}} },
		"background color": func(in *PopupInput) { in.BackgroundColor = str("#fff") },
		"background type":  func(in *PopupInput) { in.BackgroundType = str("video") },
		"schedule": func(in *PopupInput) {
			on := formdata.Bool(true)
			in.DailySchedule = &ScheduleInput{Enabled: &on, StartTime: "25:00", EndTime: "10:00"}
		},
		"date order": func(in *PopupInput) { in.EndDate = date("2025-01-01") },
		"long title": func(in *PopupInput) {
			s := string(make([]byte, 101))
			in.Title = &s
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, env := setup(t)
			in := validInput()
			mutate(&in)

			_, err := svc.Create(context.Background(), in, attachmenttest.Uploads("backgroundImage", "bg.png", attachmenttest.PNG))
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "got %v", err)
			assert.Zero(t, env.Files("popups"))
		})
	}
}

func TestScheduleNormalized(t *testing.T) {
	svc, _ := setup(t)
	in := validInput()
	on := formdata.Bool(true)
	in.DailySchedule = &ScheduleInput{Enabled: &on, StartTime: "9:05", EndTime: "17:30"}

	p, err := svc.Create(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, "09:05", p.DailySchedule.StartTime)
	assert.Equal(t, "17:30", p.DailySchedule.EndTime)
}

func TestClearBackgroundImage(t *testing.T) {
	svc, env := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(), attachmenttest.Uploads("backgroundImage", "bg.png", attachmenttest.PNG))
	require.NoError(t, err)
	require.True(t, env.Exists(p.BackgroundImage))

	updated, err := svc.Update(ctx, p.ID.Hex(), PopupInput{}, nil, []string{"backgroundImage"})
	require.NoError(t, err)
	assert.Empty(t, updated.BackgroundImage)
	assert.False(t, env.Exists(p.BackgroundImage))
	assert.Equal(t, "Investor Summit", updated.Title)
}

func TestReplaceBackgroundImage(t *testing.T) {
	svc, env := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(), attachmenttest.Uploads("backgroundImage", "bg.png", attachmenttest.PNG))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID.Hex(), PopupInput{}, attachmenttest.Uploads("backgroundImage", "new.jpg", attachmenttest.JPEG), nil)
	require.NoError(t, err)
	assert.NotEqual(t, p.BackgroundImage, updated.BackgroundImage)
	assert.False(t, env.Exists(p.BackgroundImage))
	assert.True(t, env.Exists(updated.BackgroundImage))
	assert.Equal(t, 1, env.Files("popups"))
}

func TestToggle(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	off, err := svc.Toggle(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.False(t, off.Enabled)

	on, err := svc.Toggle(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.True(t, on.Enabled)

	_, err = svc.Toggle(ctx, primitive.NewObjectID().Hex())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDeleteRemovesImage(t *testing.T) {
	svc, env := setup(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(), attachmenttest.Uploads("backgroundImage", "bg.png", attachmenttest.PNG))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID.Hex()))
	assert.False(t, env.Exists(p.BackgroundImage))
	assert.Zero(t, env.Stores[attachment.CollectionPopups].Len())
}

func TestActiveFilter(t *testing.T) {
	now := time.Date(2026, 3, 4, 9, 7, 0, 0, time.UTC)
	f := activeFilter(now)

	assert.Equal(t, true, f["enabled"])
	assert.Equal(t, bson.M{"$lte": now}, f["startDate"])

	windows := f["$or"].(bson.A)
	require.Len(t, windows, 2)
	scheduled := windows[1].(bson.M)
	assert.Equal(t, bson.M{"$lte": "09:07"}, scheduled["dailySchedule.startTime"])
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:05", normalizeClock(" 9:05 "))
	assert.Equal(t, "23:59", normalizeClock("23:59"))
	assert.Equal(t, "24:00", normalizeClock("24:00"))
}
