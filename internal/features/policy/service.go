package policy

import (
	"context"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PolicyService interface {
	List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error)
	Published(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error)
	Get(ctx context.Context, id string) (*Policy, error)
	// Create stores the policy document; createdBy is the acting admin when known.
	Create(ctx context.Context, input PolicyInput, uploads attachment.Uploads, createdBy primitive.ObjectID) (*Policy, error)
	Update(ctx context.Context, id string, input PolicyInput, uploads attachment.Uploads) (*Policy, error)
	Delete(ctx context.Context, id string) error
}

type PolicyServiceImpl struct {
	Repo         PolicyRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
}

func NewPolicyService(repo PolicyRepository, registry *attachment.Registry, auditService audit.AuditService) PolicyService {
	return &PolicyServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionPolicies),
		AuditService: auditService,
	}
}

func (s *PolicyServiceImpl) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error) {
	return s.Repo.List(ctx, f, q)
}

func (s *PolicyServiceImpl) Published(ctx context.Context, f ListFilter, q models.PageQuery) ([]Policy, int64, error) {
	return s.Repo.Published(ctx, f, q)
}

func (s *PolicyServiceImpl) Get(ctx context.Context, id string) (*Policy, error) {
	p, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Policy")
	}
	return p, nil
}

func (s *PolicyServiceImpl) Create(ctx context.Context, input PolicyInput, uploads attachment.Uploads, createdBy primitive.ObjectID) (*Policy, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if _, ok := fields["status"]; !ok {
		fields["status"] = StatusDraft
	}
	if _, ok := fields["publishedOn"]; !ok {
		fields["publishedOn"] = time.Now().UTC()
	}
	if _, ok := fields["tags"]; !ok {
		fields["tags"] = []any{}
	}
	if !createdBy.IsZero() {
		fields["createdBy"] = createdBy
	}

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionPolicies, rec.ID(), map[string]models.Change{
		"title":  {New: rec["title"]},
		"status": {New: rec["status"]},
	})
	return decode(rec)
}

func (s *PolicyServiceImpl) Update(ctx context.Context, id string, input PolicyInput, uploads attachment.Uploads) (*Policy, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionPolicies, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *PolicyServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Manager.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionPolicies, id, nil)
	return nil
}

func decode(rec recordstore.Record) (*Policy, error) {
	var p Policy
	if err := recordstore.Decode(rec, &p); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &p, nil
}
