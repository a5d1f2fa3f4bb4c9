package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/common/models"
	"invest-portal/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	ListUsers(ctx context.Context, filter map[string]interface{}, q models.PageQuery) ([]models.User, int64, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// CreateUser hashes password and stores the user; the email must be unused.
	CreateUser(ctx context.Context, user *models.User, password string) error
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	LinkProfile(ctx context.Context, id primitive.ObjectID, field string, profileID primitive.ObjectID) error
	SetStatus(ctx context.Context, id string, active bool) error
	// UpsertAdmin creates the admin or resets its password and role.
	UpsertAdmin(ctx context.Context, email, password, name string) (*models.User, bool, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type UserServiceImpl struct {
	UserRepo     UserRepository
	AuditService audit.AuditService
}

func NewUserService(userRepo UserRepository, auditService audit.AuditService) UserService {
	return &UserServiceImpl{
		UserRepo:     userRepo,
		AuditService: auditService,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, filter map[string]interface{}, q models.PageQuery) ([]models.User, int64, error) {
	if filter == nil {
		filter = make(map[string]interface{})
	}
	return s.UserRepo.List(ctx, filter, q.Limit, q.Skip())
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.UserRepo.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.NotFound("User")
	}
	return u, err
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, user *models.User, password string) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if existing, err := s.UserRepo.FindByEmail(ctx, user.Email); err == nil && existing != nil {
		return apperrors.Validation("User already exists")
	} else if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	user.IsActive = true

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return err
	}

	changes := map[string]models.Change{
		"email": {New: user.Email},
		"role":  {New: user.Role},
	}
	s.AuditService.Record(ctx, models.AuditActionCreate, "users", user.ID.Hex(), changes)
	return nil
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.Validation("Invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, apperrors.Validation("Invalid email or password")
	}
	if !u.IsActive {
		return nil, apperrors.Forbidden("Account is inactive")
	}

	now := time.Now()
	u.LastLogin = &now
	_ = s.UserRepo.UpdateFields(ctx, u.ID, bson.M{"lastLogin": now})
	return u, nil
}

func (s *UserServiceImpl) LinkProfile(ctx context.Context, id primitive.ObjectID, field string, profileID primitive.ObjectID) error {
	return s.UserRepo.UpdateFields(ctx, id, bson.M{field: profileID})
}

func (s *UserServiceImpl) SetStatus(ctx context.Context, id string, active bool) error {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdateFields(ctx, u.ID, bson.M{"isActive": active}); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionUpdate, "users", id, map[string]models.Change{
		"isActive": {Old: u.IsActive, New: active},
	})
	return nil
}

func (s *UserServiceImpl) UpsertAdmin(ctx context.Context, email, password, name string) (*models.User, bool, error) {
	existing, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	if existing != nil {
		hash, err := HashPassword(password)
		if err != nil {
			return nil, false, err
		}
		err = s.UserRepo.UpdateFields(ctx, existing.ID, bson.M{
			"password": hash,
			"role":     models.RoleSuperAdmin,
			"isActive": true,
		})
		return existing, false, err
	}

	u := &models.User{
		Email: email,
		Name:  name,
		Role:  models.RoleSuperAdmin,
		Phone: "1234567890",
	}
	if err := s.CreateUser(ctx, u, password); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.AuditService.Record(ctx, models.AuditActionDelete, "users", id.Hex(), nil)
	return nil
}
