package startup

import (
	"strings"
	"time"

	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Startup struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	StartupName  string             `bson:"startupName" json:"startupName"`
	FounderName  string             `bson:"founderName" json:"founderName"`
	Description  string             `bson:"description" json:"description"`
	Industry     string             `bson:"industry" json:"industry"`
	Stage        string             `bson:"stage" json:"stage"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Website      string             `bson:"website,omitempty" json:"website,omitempty"`
	Logo         string             `bson:"logo" json:"logo"`
	PitchDeck    string             `bson:"pitchDeck,omitempty" json:"pitchDeck,omitempty"`
	FoundedYear  int                `bson:"foundedYear,omitempty" json:"foundedYear,omitempty"`
	TeamSize     string             `bson:"teamSize,omitempty" json:"teamSize,omitempty"`
	FundingStage string             `bson:"fundingStage,omitempty" json:"fundingStage,omitempty"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type StartupInput struct {
	StartupName  *string `json:"startupName" form:"startupName" validate:"omitempty,max=200"`
	FounderName  *string `json:"founderName" form:"founderName" validate:"omitempty,max=200"`
	Description  *string `json:"description" form:"description"`
	Industry     *string `json:"industry" form:"industry"`
	Stage        *string `json:"stage" form:"stage" validate:"omitempty,oneof=Idea Prototype Seed 'Series A' 'Series B' 'Series C+'"`
	Email        *string `json:"email" form:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Website      *string `json:"website" form:"website" validate:"omitempty,http_url"`
	FoundedYear  *int    `json:"foundedYear" form:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	TeamSize     *string `json:"teamSize" form:"teamSize" validate:"omitempty,oneof=1-5 6-10 11-50 51-200 200+"`
	FundingStage *string `json:"fundingStage" form:"fundingStage" validate:"omitempty,oneof=Bootstrapped Pre-seed Seed 'Series A' 'Series B' 'Series C+' 'Not seeking funding'"`
}

// Fields drops empty strings, so a form field left blank keeps the stored value.
func (in StartupInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "startupName", in.StartupName)
	recordstore.PutString(rec, "founderName", in.FounderName)
	recordstore.PutString(rec, "description", in.Description)
	recordstore.PutString(rec, "industry", in.Industry)
	recordstore.PutString(rec, "stage", in.Stage)
	recordstore.PutString(rec, "phone", in.Phone)
	recordstore.PutString(rec, "website", in.Website)
	recordstore.PutString(rec, "teamSize", in.TeamSize)
	recordstore.PutString(rec, "fundingStage", in.FundingStage)
	recordstore.Put(rec, "foundedYear", in.FoundedYear)
	if in.Email != nil {
		rec["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}

	for k, v := range rec {
		if s, ok := v.(string); ok && s == "" {
			delete(rec, k)
		}
	}
	return rec
}

type RegisterInput struct {
	StartupInput
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
}
