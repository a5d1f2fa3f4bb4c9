package gallery

import (
	"context"
	"errors"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GalleryService interface {
	List(ctx context.Context, search string, q models.PageQuery) ([]Image, int64, error)
	Active(ctx context.Context) ([]Image, error)
	Get(ctx context.Context, id string) (*Image, error)
	Create(ctx context.Context, input ImageInput, uploads attachment.Uploads, uploadedBy primitive.ObjectID) (*Image, error)
	Update(ctx context.Context, id string, input ImageInput, uploads attachment.Uploads) (*Image, error)
	ToggleStatus(ctx context.Context, id string) (*StatusResult, error)
	Delete(ctx context.Context, id string) error
}

type GalleryServiceImpl struct {
	Repo         GalleryRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
}

func NewGalleryService(repo GalleryRepository, registry *attachment.Registry, auditService audit.AuditService) GalleryService {
	return &GalleryServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionGallery),
		AuditService: auditService,
	}
}

func (s *GalleryServiceImpl) List(ctx context.Context, search string, q models.PageQuery) ([]Image, int64, error) {
	return s.Repo.List(ctx, search, q)
}

func (s *GalleryServiceImpl) Active(ctx context.Context) ([]Image, error) {
	return s.Repo.Active(ctx)
}

func (s *GalleryServiceImpl) Get(ctx context.Context, id string) (*Image, error) {
	img, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Image")
	}
	return img, nil
}

func (s *GalleryServiceImpl) Create(ctx context.Context, input ImageInput, uploads attachment.Uploads, uploadedBy primitive.ObjectID) (*Image, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if _, ok := fields["isActive"]; !ok {
		fields["isActive"] = true
	}
	if _, ok := fields["order"]; !ok {
		fields["order"] = 0
	}
	if !uploadedBy.IsZero() {
		fields["uploadedBy"] = uploadedBy
	}

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionGallery, rec.ID(), map[string]models.Change{
		"title": {New: rec["title"]},
	})
	return decode(rec)
}

func (s *GalleryServiceImpl) Update(ctx context.Context, id string, input ImageInput, uploads attachment.Uploads) (*Image, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionGallery, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *GalleryServiceImpl) ToggleStatus(ctx context.Context, id string) (*StatusResult, error) {
	cur, err := s.Manager.Records().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, apperrors.NotFound("Image")
		}
		return nil, err
	}
	active, _ := cur["isActive"].(bool)

	rec, err := s.Manager.Update(ctx, id, recordstore.Record{"isActive": !active}, nil, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionGallery, id, map[string]models.Change{
		"isActive": {Old: active, New: !active},
	})

	img, err := decode(rec)
	if err != nil {
		return nil, err
	}
	msg := "Image deactivated"
	if img.IsActive {
		msg = "Image activated"
	}
	return &StatusResult{ID: img.ID, IsActive: img.IsActive, Message: msg}, nil
}

func (s *GalleryServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Manager.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionGallery, id, nil)
	return nil
}

func decode(rec recordstore.Record) (*Image, error) {
	var img Image
	if err := recordstore.Decode(rec, &img); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &img, nil
}
