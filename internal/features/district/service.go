package district

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"
)

type DistrictService interface {
	Create(ctx context.Context, input DistrictInput, uploads attachment.Uploads) (*District, error)
	List(ctx context.Context) ([]District, error)
	GetByName(ctx context.Context, name string) (*District, error)
	Update(ctx context.Context, id string, input DistrictInput, uploads attachment.Uploads) (*District, error)
	Delete(ctx context.Context, id string) error
	// Refs lists districts for dropdowns.
	Refs(ctx context.Context) ([]Ref, error)
}

type DistrictServiceImpl struct {
	Repo         DistrictRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
}

func NewDistrictService(repo DistrictRepository, registry *attachment.Registry, auditService audit.AuditService) DistrictService {
	return &DistrictServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionDistricts),
		AuditService: auditService,
	}
}

func (s *DistrictServiceImpl) Create(ctx context.Context, input DistrictInput, uploads attachment.Uploads) (*District, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if _, ok := fields["railConnectivity"]; !ok {
		fields["railConnectivity"] = "None"
	}
	for _, list := range []string{"primaryLanguages", "majorIndustries", "awardsPhotos"} {
		if _, ok := fields[list]; !ok {
			fields[list] = []any{}
		}
	}

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionDistricts, rec.ID(), nil)
	return decode(rec)
}

func (s *DistrictServiceImpl) List(ctx context.Context) ([]District, error) {
	return s.Repo.List(ctx)
}

func (s *DistrictServiceImpl) Refs(ctx context.Context) ([]Ref, error) {
	return s.Repo.Refs(ctx)
}

func (s *DistrictServiceImpl) GetByName(ctx context.Context, name string) (*District, error) {
	d, err := s.Repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.NotFound("District")
	}
	return d, nil
}

func (s *DistrictServiceImpl) Update(ctx context.Context, id string, input DistrictInput, uploads attachment.Uploads) (*District, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionDistricts, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *DistrictServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Manager.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionDistricts, id, nil)
	return nil
}

func decode(rec recordstore.Record) (*District, error) {
	var d District
	if err := recordstore.Decode(rec, &d); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &d, nil
}
