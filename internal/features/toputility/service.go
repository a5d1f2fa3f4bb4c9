package toputility

import (
	"context"
	"fmt"
	"strings"
	"time"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/query"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const moduleName = "top_utility"

type TopUtilityService interface {
	// GetConfig returns the active config, creating the default one on first use.
	GetConfig(ctx context.Context) (*Config, error)
	UpdateConfig(ctx context.Context, input ConfigInput) (*Config, error)
	ListAnnouncements(ctx context.Context) ([]Announcement, error)
	CreateAnnouncement(ctx context.Context, input AnnouncementInput) (*Announcement, error)
	UpdateAnnouncement(ctx context.Context, id string, input AnnouncementInput) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
	Reorder(ctx context.Context, input ReorderInput) error
}

type TopUtilityServiceImpl struct {
	Repo         TopUtilityRepository
	AuditService audit.AuditService
}

func NewTopUtilityService(repo TopUtilityRepository, auditService audit.AuditService) TopUtilityService {
	return &TopUtilityServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

func (s *TopUtilityServiceImpl) GetConfig(ctx context.Context) (*Config, error) {
	cfg, err := s.Repo.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig(time.Now().UTC())
	if err := s.Repo.SaveConfig(ctx, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to create configuration", err)
	}
	return cfg, nil
}

func (s *TopUtilityServiceImpl) UpdateConfig(ctx context.Context, input ConfigInput) (*Config, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	cfg, err := s.Repo.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig(time.Now().UTC())
	}
	old := *cfg

	input.Apply(cfg)
	cfg.UpdatedAt = time.Now().UTC()
	if err := s.Repo.SaveConfig(ctx, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to update configuration", err)
	}

	s.AuditService.Record(ctx, models.AuditActionUpdate, moduleName, cfg.ID.Hex(), map[string]models.Change{
		"config": {Old: old, New: *cfg},
	})
	return cfg, nil
}

func (s *TopUtilityServiceImpl) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	return s.Repo.ActiveAnnouncements(ctx)
}

func (s *TopUtilityServiceImpl) CreateAnnouncement(ctx context.Context, input AnnouncementInput) (*Announcement, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	missing := map[string]string{}
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		missing["title"] = "Title is required"
	}
	if input.Content == nil || strings.TrimSpace(*input.Content) == "" {
		missing["content"] = "Content is required"
	}
	if len(missing) > 0 {
		return nil, apperrors.ValidationFields(missing)
	}

	a := input.Announcement(time.Now().UTC())
	if err := s.Repo.CreateAnnouncement(ctx, a); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to create announcement", err)
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, "announcements", a.ID.Hex(), map[string]models.Change{
		"title": {New: a.Title},
	})
	return a, nil
}

func (s *TopUtilityServiceImpl) UpdateAnnouncement(ctx context.Context, id string, input AnnouncementInput) (*Announcement, error) {
	oid, ok := query.ObjectID(id)
	if !ok {
		return nil, apperrors.NotFound("Announcement")
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	set := input.Set()
	for _, k := range []string{"title", "content"} {
		if v, ok := set[k]; ok && v == "" {
			return nil, apperrors.ValidationFields(map[string]string{k: "This field is required"})
		}
	}

	a, found, err := s.Repo.UpdateAnnouncement(ctx, oid, set)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindStoreWrite, "Failed to update announcement", err)
	}
	if !found {
		return nil, apperrors.NotFound("Announcement")
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, "announcements", id, nil)
	return a, nil
}

func (s *TopUtilityServiceImpl) DeleteAnnouncement(ctx context.Context, id string) error {
	oid, ok := query.ObjectID(id)
	if !ok {
		return apperrors.NotFound("Announcement")
	}
	deleted, err := s.Repo.DeleteAnnouncement(ctx, oid)
	if err != nil {
		return apperrors.Wrap(apperrors.KindStoreWrite, "Failed to delete announcement", err)
	}
	if !deleted {
		return apperrors.NotFound("Announcement")
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, "announcements", id, nil)
	return nil
}

func (s *TopUtilityServiceImpl) Reorder(ctx context.Context, input ReorderInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	orders := make(map[primitive.ObjectID]int, len(input.Announcements))
	for i, item := range input.Announcements {
		oid, ok := query.ObjectID(item.ID)
		if !ok {
			return apperrors.ValidationFields(map[string]string{
				fmt.Sprintf("announcements[%d].id", i): "Invalid id",
			})
		}
		orders[oid] = item.Order
	}

	if err := s.Repo.Reorder(ctx, orders); err != nil {
		return apperrors.Wrap(apperrors.KindStoreWrite, "Failed to reorder announcements", err)
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, "announcements", "reorder", nil)
	return nil
}
