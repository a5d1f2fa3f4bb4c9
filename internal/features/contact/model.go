package contact

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Submission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type SubmitInput struct {
	FullName string `json:"fullName" form:"fullName" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone"`
	Message  string `json:"message" form:"message" validate:"required,min=10"`
}

var (
	markupChars = regexp.MustCompile(`[<>"']`)
	phoneJunk   = regexp.MustCompile(`[^\d+\-\s()]`)
)

// Normalize trims every field before validation.
func (in SubmitInput) Normalize() SubmitInput {
	return SubmitInput{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Message:  strings.TrimSpace(in.Message),
	}
}

// Sanitize strips markup characters from free text and anything but digits
// and separators from the phone number.
func (in SubmitInput) Sanitize() Submission {
	return Submission{
		FullName: markupChars.ReplaceAllString(in.FullName, ""),
		Email:    in.Email,
		Phone:    phoneJunk.ReplaceAllString(in.Phone, ""),
		Message:  markupChars.ReplaceAllString(in.Message, ""),
	}
}

type ListQuery struct {
	Search    string
	Fields    []string
	SortBy    string
	Ascending bool
}

var sortable = map[string]bool{"createdAt": true, "fullName": true, "email": true}

// SortField falls back to createdAt for unknown columns.
func (q ListQuery) SortField() string {
	if sortable[q.SortBy] {
		return q.SortBy
	}
	return "createdAt"
}
