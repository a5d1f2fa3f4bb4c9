package industry

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"
)

type IndustryService interface {
	List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Industry, int64, error)
	Get(ctx context.Context, id string) (*Industry, error)
	Create(ctx context.Context, input IndustryInput, uploads attachment.Uploads) (*Industry, error)
	Update(ctx context.Context, id string, input IndustryInput, uploads attachment.Uploads, clears []string) (*Industry, error)
	Delete(ctx context.Context, id string) error
	Refs(ctx context.Context) ([]Ref, error)
}

type IndustryServiceImpl struct {
	Repo         IndustryRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
}

func NewIndustryService(repo IndustryRepository, registry *attachment.Registry, auditService audit.AuditService) IndustryService {
	return &IndustryServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionIndustries),
		AuditService: auditService,
	}
}

func (s *IndustryServiceImpl) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Industry, int64, error) {
	return s.Repo.List(ctx, f, q)
}

func (s *IndustryServiceImpl) Get(ctx context.Context, id string) (*Industry, error) {
	ind, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Industry")
	}
	return ind, nil
}

func (s *IndustryServiceImpl) Refs(ctx context.Context) ([]Ref, error) {
	return s.Repo.Refs(ctx)
}

func (s *IndustryServiceImpl) Create(ctx context.Context, input IndustryInput, uploads attachment.Uploads) (*Industry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if _, ok := fields["status"]; !ok {
		fields["status"] = "active"
	}
	for _, list := range []string{"leadership", "pressReleases", "mediaCoverage", "governmentPapers", "gallery"} {
		if _, ok := fields[list]; !ok {
			fields[list] = []any{}
		}
	}

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionIndustries, rec.ID(), map[string]models.Change{
		"name": {New: rec["name"]},
	})
	return decode(rec)
}

func (s *IndustryServiceImpl) Update(ctx context.Context, id string, input IndustryInput, uploads attachment.Uploads, clears []string) (*Industry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, clears)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionIndustries, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *IndustryServiceImpl) Delete(ctx context.Context, id string) error {
	old, err := s.Manager.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionIndustries, id, map[string]models.Change{
		"name": {Old: old["name"]},
	})
	return nil
}

func decode(rec recordstore.Record) (*Industry, error) {
	var ind Industry
	if err := recordstore.Decode(rec, &ind); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &ind, nil
}
