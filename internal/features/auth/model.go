package auth

import "invest-portal/internal/features/company"

// RegisterInput is the company sign-up form: the profile fields plus account credentials.
type RegisterInput struct {
	company.CompanyInput
	Password  string `json:"password" form:"password" validate:"required,min=6"`
	Password2 string `json:"password2" form:"password2" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}
