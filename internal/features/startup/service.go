package startup

import (
	"context"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/features/user"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type StartupService interface {
	// Register creates the founder's account and the startup profile together.
	Register(ctx context.Context, input RegisterInput, uploads attachment.Uploads) (*user.Session, error)
	Me(ctx context.Context, userID primitive.ObjectID) (*Startup, error)
	UpdateMe(ctx context.Context, userID primitive.ObjectID, input StartupInput, uploads attachment.Uploads) (*Startup, error)
	DeleteMe(ctx context.Context, userID primitive.ObjectID) error
	List(ctx context.Context) ([]Startup, error)
	Get(ctx context.Context, id string) (*Startup, error)
	Verify(ctx context.Context, id string) (*Startup, error)
}

type StartupServiceImpl struct {
	Repo         StartupRepository
	Manager      *attachment.Manager
	UserService  user.UserService
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewStartupService(repo StartupRepository, registry *attachment.Registry, userService user.UserService, auditService audit.AuditService, logger *zap.Logger) StartupService {
	return &StartupServiceImpl{
		Repo:         repo,
		Manager:      registry.Manager(attachment.CollectionStartups),
		UserService:  userService,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *StartupServiceImpl) Register(ctx context.Context, input RegisterInput, uploads attachment.Uploads) (*user.Session, error) {
	if err := validation.Struct(input.StartupInput); err != nil {
		return nil, err
	}
	if len(input.Password) < 6 {
		return nil, apperrors.ValidationFields(map[string]string{"password": "Must be at least 6 characters"})
	}
	if input.Password != input.Password2 {
		return nil, apperrors.Validation("Passwords do not match")
	}

	fields := input.Fields()
	email, _ := fields["email"].(string)
	name, _ := fields["founderName"].(string)
	phone, _ := fields["phone"].(string)

	fields["isVerified"] = false
	fields["isActive"] = true
	if err := s.Manager.Check(fields, uploads); err != nil {
		return nil, err
	}

	u := &models.User{Email: email, Name: name, Phone: phone, Role: models.RoleStartup}
	if err := s.UserService.CreateUser(ctx, u, input.Password); err != nil {
		return nil, err
	}
	fields["user"] = u.ID

	rec, err := s.Manager.Create(ctx, fields, uploads)
	if err != nil {
		if derr := s.UserService.DeleteUser(ctx, u.ID); derr != nil {
			s.Logger.Error("Failed to remove user after startup registration failed",
				zap.String("user_id", u.ID.Hex()), zap.Error(derr))
		}
		return nil, err
	}

	startupID, _ := rec["_id"].(primitive.ObjectID)
	if err := s.UserService.LinkProfile(ctx, u.ID, "startup", startupID); err != nil {
		s.Logger.Warn("Failed to link startup to user", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	return user.NewSession(u)
}

func (s *StartupServiceImpl) Me(ctx context.Context, userID primitive.ObjectID) (*Startup, error) {
	st, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperrors.NotFound("Startup profile")
	}
	return st, nil
}

func (s *StartupServiceImpl) UpdateMe(ctx context.Context, userID primitive.ObjectID, input StartupInput, uploads attachment.Uploads) (*Startup, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	st, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := input.Fields()
	// the account email is the login and is not editable here
	delete(fields, "email")

	rec, err := s.Manager.Update(ctx, st.ID.Hex(), fields, uploads, nil)
	if err != nil {
		return nil, err
	}
	return decode(rec)
}

func (s *StartupServiceImpl) DeleteMe(ctx context.Context, userID primitive.ObjectID) error {
	st, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.Manager.Delete(ctx, st.ID.Hex()); err != nil {
		return err
	}
	return s.UserService.DeleteUser(ctx, userID)
}

func (s *StartupServiceImpl) List(ctx context.Context) ([]Startup, error) {
	return s.Repo.ListPublic(ctx)
}

func (s *StartupServiceImpl) Get(ctx context.Context, id string) (*Startup, error) {
	st, ok, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Startup")
	}
	return st, nil
}

func (s *StartupServiceImpl) Verify(ctx context.Context, id string) (*Startup, error) {
	rec, err := s.Manager.Update(ctx, id, recordstore.Record{"isVerified": true}, nil, nil)
	if err != nil {
		return nil, err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, attachment.CollectionStartups, id, map[string]models.Change{
		"isVerified": {New: true},
	})
	return decode(rec)
}

func decode(rec recordstore.Record) (*Startup, error) {
	var st Startup
	if err := recordstore.Decode(rec, &st); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &st, nil
}
