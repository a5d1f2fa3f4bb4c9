package member

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/export"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/recordstore"
)

type MemberService interface {
	List(ctx context.Context) ([]Member, error)
	ListPublic(ctx context.Context) ([]PublicMember, error)
	Get(ctx context.Context, id string) (*Member, error)
	Create(ctx context.Context, input MemberInput, uploads attachment.Uploads) (*Member, error)
	Update(ctx context.Context, id string, input MemberInput, uploads attachment.Uploads, clears []string) (*Member, error)
	SetPriority(ctx context.Context, id string, priority int) (*Member, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) ([]byte, error)
}

type MemberServiceImpl struct {
	Repo         MemberRepository
	Manager      *attachment.Manager
	AuditService audit.AuditService
}

func NewMemberService(repo MemberRepository, registry *attachment.Registry, auditService audit.AuditService) MemberService {
	return &MemberServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionMembers),
		AuditService: auditService,
	}
}

func (s *MemberServiceImpl) List(ctx context.Context) ([]Member, error) {
	return s.Repo.List(ctx)
}

func (s *MemberServiceImpl) ListPublic(ctx context.Context) ([]PublicMember, error) {
	return s.Repo.ListPublic(ctx)
}

func (s *MemberServiceImpl) Get(ctx context.Context, id string) (*Member, error) {
	m, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Member")
	}
	return m, nil
}

func (s *MemberServiceImpl) Create(ctx context.Context, input MemberInput, uploads attachment.Uploads) (*Member, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	fields := input.Fields()
	if _, ok := fields["isActive"]; !ok {
		fields["isActive"] = true
	}
	if _, ok := fields["priority"]; !ok {
		fields["priority"] = 0
	}
	if _, ok := fields["social"]; !ok {
		fields["social"] = map[string]any{}
	}

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, attachment.CollectionMembers, rec.ID(), nil)
	return decode(rec)
}

func (s *MemberServiceImpl) Update(ctx context.Context, id string, input MemberInput, uploads attachment.Uploads, clears []string) (*Member, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	rec, prev, err := s.Manager.Replace(ctx, id, input.Fields(), uploads, clears)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionMembers, id, audit.Diff(prev, rec))
	return decode(rec)
}

func (s *MemberServiceImpl) SetPriority(ctx context.Context, id string, priority int) (*Member, error) {
	rec, err := s.Manager.Update(ctx, id, recordstore.Record{"priority": priority}, nil, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionMembers, id, map[string]models.Change{
		"priority": {New: priority},
	})
	return decode(rec)
}

func (s *MemberServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Manager.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, attachment.CollectionMembers, id, nil)
	return nil
}

var exportColumns = []export.Column{
	{Header: "Full Name", Key: "fullName", Width: 25},
	{Header: "Designation", Key: "designation", Width: 25},
	{Header: "Department", Key: "department", Width: 20},
	{Header: "Email", Key: "email", Width: 30},
	{Header: "LinkedIn", Key: "linkedin", Width: 35},
	{Header: "Priority", Key: "priority", Width: 10},
	{Header: "Active", Key: "isActive", Width: 10},
	{Header: "Profile Image", Key: "profileImage", Width: 45},
	{Header: "Created At", Key: "createdAt", Width: 20},
}

func (s *MemberServiceImpl) Export(ctx context.Context) ([]byte, error) {
	members, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(members))
	for _, m := range members {
		rows = append(rows, map[string]any{
			"fullName":     m.FullName,
			"designation":  m.Designation,
			"department":   m.Department,
			"email":        m.Social.Email,
			"linkedin":     m.Social.Linkedin,
			"priority":     m.Priority,
			"isActive":     m.IsActive,
			"profileImage": m.ProfileImage,
			"createdAt":    m.CreatedAt,
		})
	}
	return export.XLSX("Members", exportColumns, rows)
}

func decode(rec recordstore.Record) (*Member, error) {
	var m Member
	if err := recordstore.Decode(rec, &m); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &m, nil
}
