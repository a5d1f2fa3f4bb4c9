package contact

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/features/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockRepo struct {
	saved   []Submission
	saveErr error
}

func (m *MockRepo) Create(ctx context.Context, s *Submission) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	s.ID = primitive.NewObjectID()
	m.saved = append(m.saved, *s)
	return nil
}
func (m *MockRepo) List(ctx context.Context, lq ListQuery, q models.PageQuery) ([]Submission, int64, error) {
	return m.saved, int64(len(m.saved)), nil
}
func (m *MockRepo) All(ctx context.Context) ([]Submission, error) { return m.saved, nil }
func (m *MockRepo) EnsureIndexes(ctx context.Context)             {}

type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) Enabled() bool         { return m.Called().Bool(0) }
func (m *MockEmail) NotifyAddress() string { return m.Called().String(0) }
func (m *MockEmail) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func validInput() SubmitInput {
	return SubmitInput{
		FullName: ` <b>Ravi "K"</b> `,
		Email:    " Ravi@Example.COM ",
		Phone:    "+91 (80) 1234-5678 ext#9",
		Message:  "I'd like to <script>invest</script> in textiles.",
	}
}

func TestSubmitSanitizes(t *testing.T) {
	repo := &MockRepo{}
	svc := NewContactService(repo, nil, zap.NewNop())

	sub, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "bRavi K/b", sub.FullName)
	assert.Equal(t, "ravi@example.com", sub.Email)
	assert.Equal(t, "+91 (80) 1234-5678 9", sub.Phone)
	assert.Equal(t, "Id like to scriptinvest/script in textiles.", sub.Message)
	require.Len(t, repo.saved, 1)
}

func TestSubmitValidation(t *testing.T) {
	cases := map[string]func(*SubmitInput){
		"missing name":  func(in *SubmitInput) { in.FullName = "  " },
		"bad email":     func(in *SubmitInput) { in.Email = "ravi" },
		"short message": func(in *SubmitInput) { in.Message = "hello" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &MockRepo{}
			svc := NewContactService(repo, nil, zap.NewNop())
			in := validInput()
			mutate(&in)

			_, err := svc.Submit(context.Background(), in)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			assert.Empty(t, repo.saved)
		})
	}
}

func TestSubmitNotifies(t *testing.T) {
	mailer := &MockEmail{}
	mailer.On("Enabled").Return(true)
	mailer.On("NotifyAddress").Return("ops@portal.in")
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
		return len(m.To) == 1 && m.To[0] == "ops@portal.in" && m.EntityType == "contactforms"
	})).Return(nil)

	svc := NewContactService(&MockRepo{}, mailer, zap.NewNop())
	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestSubmitSurvivesMailFailure(t *testing.T) {
	mailer := &MockEmail{}
	mailer.On("Enabled").Return(true)
	mailer.On("NotifyAddress").Return("ops@portal.in")
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := NewContactService(&MockRepo{}, mailer, zap.NewNop())
	_, err := svc.Submit(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestSubmitStoreFailure(t *testing.T) {
	svc := NewContactService(&MockRepo{saveErr: errors.New("down")}, nil, zap.NewNop())
	_, err := svc.Submit(context.Background(), validInput())
	assert.True(t, apperrors.IsKind(err, apperrors.KindStoreWrite))
}

func TestExport(t *testing.T) {
	repo := &MockRepo{saved: []Submission{
		{FullName: "Ravi", Email: "ravi@example.com", Message: "Hello there friends", CreatedAt: time.Now()},
	}}
	svc := NewContactService(repo, nil, zap.NewNop())

	data, err := svc.Export(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Contact Submissions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Full Name", rows[0][0])
	assert.Equal(t, "ravi@example.com", rows[1][1])
}

func TestSortField(t *testing.T) {
	assert.Equal(t, "fullName", ListQuery{SortBy: "fullName"}.SortField())
	assert.Equal(t, "createdAt", ListQuery{SortBy: "$where"}.SortField())
}
