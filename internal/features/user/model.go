package user

import (
	"invest-portal/internal/common/models"
	"invest-portal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the user view returned alongside a token.
type Profile struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// NewSession signs a token for u.
func NewSession(u *models.User) (*Session, error) {
	roles := []string{u.Role}
	if u.Role == models.RoleSuperAdmin {
		roles = append(roles, models.RoleAdmin)
	}
	token, err := utils.GenerateToken(u.ID, roles)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token: token,
		User:  Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	}, nil
}
