package popup

import (
	"context"
	"errors"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"
)

type PopupService interface {
	List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Popup, int64, error)
	Active(ctx context.Context) ([]Popup, error)
	Get(ctx context.Context, id string) (*Popup, error)
	Create(ctx context.Context, input PopupInput, uploads attachment.Uploads) (*Popup, error)
	Update(ctx context.Context, id string, input PopupInput, uploads attachment.Uploads, clears []string) (*Popup, error)
	Toggle(ctx context.Context, id string) (*Popup, error)
	Delete(ctx context.Context, id string) error
}

type PopupServiceImpl struct {
	Repo         PopupRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
	Now          func() time.Time
}

func NewPopupService(repo PopupRepository, registry *attachment.Registry, auditService audit.AuditService) PopupService {
	return &PopupServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionPopups),
		AuditService: auditService,
		Now:          time.Now,
	}
}

func (s *PopupServiceImpl) List(ctx context.Context, f ListFilter, q models.PageQuery) ([]Popup, int64, error) {
	return s.Repo.List(ctx, f, q)
}

func (s *PopupServiceImpl) Active(ctx context.Context) ([]Popup, error) {
	return s.Repo.Active(ctx, s.Now())
}

func (s *PopupServiceImpl) Get(ctx context.Context, id string) (*Popup, error) {
	p, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Popup")
	}
	return p, nil
}

// validate checks the input tags plus the rules that span fields.
func validate(input PopupInput, create bool) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	fields := map[string]string{}
	if create {
		if input.StartDate.TimePtr() == nil {
			fields["startDate"] = "Start date is required"
		}
		if input.EndDate.TimePtr() == nil {
			fields["endDate"] = "End date is required"
		}
	}
	start, end := input.StartDate.TimePtr(), input.EndDate.TimePtr()
	if start != nil && end != nil && end.Before(*start) {
		fields["endDate"] = "End date must not be before start date"
	}
	if in := input.DailySchedule; in != nil {
		d := in.schedule()
		if d.Enabled {
			if !validation.IsHHMM(d.StartTime) {
				fields["dailySchedule.startTime"] = "Start time must be in HH:MM format"
			}
			if !validation.IsHHMM(d.EndTime) {
				fields["dailySchedule.endTime"] = "End time must be in HH:MM format"
			}
		}
	}
	if len(fields) > 0 {
		return apperrors.ValidationFields(fields)
	}
	return nil
}

func (s *PopupServiceImpl) Create(ctx context.Context, input PopupInput, uploads attachment.Uploads) (*Popup, error) {
	if err := validate(input, true); err != nil {
		return nil, err
	}

	fields := input.Fields()
	defaults := recordstore.Record{
		"ctas":            []any{},
		"priority":        0,
		"backgroundType":  "color",
		"backgroundColor": "#ffffff",
		"backgroundImage": "",
		"displayDuration": 0,
		"closable":        true,
		"enabled":         true,
		"delaySeconds":    0,
		"dailySchedule":   map[string]any{"enabled": false},
	}
	for k, v := range defaults {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionPopups, rec.ID(), map[string]models.Change{
		"title": {New: rec["title"]},
	})
	return decode(rec)
}

func (s *PopupServiceImpl) Update(ctx context.Context, id string, input PopupInput, uploads attachment.Uploads, clears []string) (*Popup, error) {
	if err := validate(input, false); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, clears)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionPopups, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *PopupServiceImpl) Toggle(ctx context.Context, id string) (*Popup, error) {
	cur, err := s.Manager.Records().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, apperrors.NotFound("Popup")
		}
		return nil, err
	}
	enabled, _ := cur["enabled"].(bool)

	rec, err := s.Manager.Update(ctx, id, recordstore.Record{"enabled": !enabled}, nil, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionPopups, id, map[string]models.Change{
		"enabled": {Old: enabled, New: !enabled},
	})
	return decode(rec)
}

func (s *PopupServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Manager.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionPopups, id, nil)
	return nil
}

func decode(rec recordstore.Record) (*Popup, error) {
	var p Popup
	if err := recordstore.Decode(rec, &p); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &p, nil
}
