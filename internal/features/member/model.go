package member

import (
	"strings"
	"time"

	"invest-portal/internal/common/formdata"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Social struct {
	Email    string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Linkedin string `bson:"linkedin,omitempty" json:"linkedin,omitempty" validate:"omitempty,url"`
}

type Member struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Social       Social             `bson:"social" json:"social"`
	Priority     int                `bson:"priority" json:"priority"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicMember is the projection served to anonymous visitors.
type PublicMember struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Social       Social             `bson:"social" json:"social"`
	Priority     int                `bson:"priority" json:"priority"`
}

type MemberInput struct {
	FullName    *string        `json:"fullName" form:"fullName" validate:"omitempty,max=200"`
	Designation *string        `json:"designation" form:"designation"`
	Department  *string        `json:"department" form:"department"`
	Social      *Social        `json:"social" form:"-"`
	Priority    *int           `json:"priority" form:"priority"`
	IsActive    *formdata.Bool `json:"isActive" form:"isActive"`
}

func (in MemberInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "fullName", in.FullName)
	recordstore.PutString(rec, "designation", in.Designation)
	recordstore.PutString(rec, "department", in.Department)
	recordstore.Put(rec, "priority", in.Priority)
	if in.IsActive != nil {
		rec["isActive"] = bool(*in.IsActive)
	}
	if in.Social != nil {
		rec["social"] = map[string]any{
			"email":    strings.ToLower(strings.TrimSpace(in.Social.Email)),
			"linkedin": strings.TrimSpace(in.Social.Linkedin),
		}
	}
	return rec
}

type PriorityInput struct {
	Priority *int `json:"priority" form:"priority"`
}
