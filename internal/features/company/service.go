package company

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CompanyService interface {
	Create(ctx context.Context, input CompanyInput, uploads attachment.Uploads) (*Company, error)
	// CreateForUser creates the company profile owned by userID.
	CreateForUser(ctx context.Context, userID primitive.ObjectID, input CompanyInput, uploads attachment.Uploads) (*Company, error)
	// Check reports whether Create would accept input and uploads, without writing anything.
	Check(input CompanyInput, uploads attachment.Uploads) error
	List(ctx context.Context, industry string) ([]Company, error)
	IndustryNames(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*Company, error)
	Update(ctx context.Context, id string, input CompanyInput, uploads attachment.Uploads, clears []string) (*Company, error)
	Verify(ctx context.Context, id string, verified bool) (*Company, error)
	Delete(ctx context.Context, id string) error
}

type CompanyServiceImpl struct {
	Repo         CompanyRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
}

func NewCompanyService(repo CompanyRepository, registry *attachment.Registry, auditService audit.AuditService) CompanyService {
	return &CompanyServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionCompanies),
		AuditService: auditService,
	}
}

func (s *CompanyServiceImpl) Create(ctx context.Context, input CompanyInput, uploads attachment.Uploads) (*Company, error) {
	return s.create(ctx, nil, input, uploads)
}

func (s *CompanyServiceImpl) CreateForUser(ctx context.Context, userID primitive.ObjectID, input CompanyInput, uploads attachment.Uploads) (*Company, error) {
	return s.create(ctx, &userID, input, uploads)
}

func (s *CompanyServiceImpl) Check(input CompanyInput, uploads attachment.Uploads) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	return s.Manager.Check(newFields(nil, input), uploads)
}

func (s *CompanyServiceImpl) create(ctx context.Context, userID *primitive.ObjectID, input CompanyInput, uploads attachment.Uploads) (*Company, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, err := s.Manager.Create(ctx, newFields(userID, input), uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionCompanies, rec.ID(), nil)
	return decode(rec)
}

func newFields(userID *primitive.ObjectID, input CompanyInput) recordstore.Record {
	fields := input.Fields()
	fields["isVerified"] = false
	fields["isActive"] = true
	if userID != nil {
		fields["user"] = *userID
	}
	return fields
}

func (s *CompanyServiceImpl) List(ctx context.Context, industry string) ([]Company, error) {
	return s.Repo.List(ctx, industry)
}

func (s *CompanyServiceImpl) IndustryNames(ctx context.Context) ([]string, error) {
	return s.Repo.IndustryNames(ctx)
}

func (s *CompanyServiceImpl) Get(ctx context.Context, id string) (*Company, error) {
	c, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Company")
	}
	return c, nil
}

func (s *CompanyServiceImpl) Update(ctx context.Context, id string, input CompanyInput, uploads attachment.Uploads, clears []string) (*Company, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, clears)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionCompanies, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *CompanyServiceImpl) Verify(ctx context.Context, id string, verified bool) (*Company, error) {
	rec, err := s.Manager.Update(ctx, id, recordstore.Record{"isVerified": verified}, nil, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionCompanies, id, map[string]models.Change{
		"isVerified": {New: verified},
	})
	return decode(rec)
}

func (s *CompanyServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Manager.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionCompanies, id, nil)
	return nil
}

func decode(rec recordstore.Record) (*Company, error) {
	var c Company
	if err := recordstore.Decode(rec, &c); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &c, nil
}
