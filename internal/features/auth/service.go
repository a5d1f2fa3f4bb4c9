package auth

import (
	"context"
	"strings"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/features/company"
	"invest-portal/internal/features/user"

	"go.uber.org/zap"
)

const moduleName = "users"

type AuthService interface {
	// RegisterCompany creates a company account and its profile; the account is removed when the profile fails.
	RegisterCompany(ctx context.Context, input RegisterInput, uploads attachment.Uploads) (*user.Session, error)
	Login(ctx context.Context, input LoginInput) (*user.Session, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type AuthServiceImpl struct {
	UserService    user.UserService
	CompanyService company.CompanyService
	AuditService   audit.AuditService
	Logger         *zap.Logger
}

func NewAuthService(userService user.UserService, companyService company.CompanyService, auditService audit.AuditService, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{
		UserService:    userService,
		CompanyService: companyService,
		AuditService:   auditService,
		Logger:         logger,
	}
}

func (s *AuthServiceImpl) RegisterCompany(ctx context.Context, input RegisterInput, uploads attachment.Uploads) (*user.Session, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Password != input.Password2 {
		return nil, apperrors.Validation("Passwords do not match")
	}

	fields := input.Fields()
	email, _ := fields["email"].(string)
	name, _ := fields["companyName"].(string)
	phone, _ := fields["phone"].(string)
	if email == "" {
		return nil, apperrors.ValidationFields(map[string]string{"email": "Email is required"})
	}

	if err := s.CompanyService.Check(input.CompanyInput, uploads); err != nil {
		return nil, err
	}

	u := &models.User{Email: email, Name: name, Phone: phone, Role: models.RoleCompany}
	if err := s.UserService.CreateUser(ctx, u, input.Password); err != nil {
		return nil, err
	}

	profile, err := s.CompanyService.CreateForUser(ctx, u.ID, input.CompanyInput, uploads)
	if err != nil {
		if derr := s.UserService.DeleteUser(ctx, u.ID); derr != nil {
			s.Logger.Error("Failed to remove user after company registration failed",
				zap.String("user_id", u.ID.Hex()), zap.Error(derr))
		}
		return nil, err
	}

	if err := s.UserService.LinkProfile(ctx, u.ID, "company", profile.ID); err != nil {
		s.Logger.Warn("Failed to link company to user", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	u.Company = &profile.ID

	s.AuditService.Record(ctx, models.AuditActionCreate, moduleName, u.ID.Hex(), nil)
	return user.NewSession(u)
}

func (s *AuthServiceImpl) Login(ctx context.Context, input LoginInput) (*user.Session, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	u, err := s.UserService.Authenticate(ctx, strings.ToLower(strings.TrimSpace(input.Email)), input.Password)
	if err != nil {
		return nil, err
	}

	session, err := user.NewSession(u)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.AuditService.Record(ctx, models.AuditActionLogin, moduleName, u.ID.Hex(), nil)
	return session, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.UserService.GetUserByID(ctx, userID)
}
