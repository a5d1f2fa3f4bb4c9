package company

import (
	"strings"
	"time"

	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Company struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User        *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CompanyName string              `bson:"companyName" json:"companyName"`
	DirectorCeo string              `bson:"directorCeo" json:"directorCeo"`
	Industry    string              `bson:"industry,omitempty" json:"industry,omitempty"`
	Email       string              `bson:"email" json:"email"`
	Phone       string              `bson:"phone" json:"phone"`
	Website     string              `bson:"website,omitempty" json:"website,omitempty"`
	Logo        string              `bson:"logo,omitempty" json:"logo,omitempty"`
	Banner      string              `bson:"banner,omitempty" json:"banner,omitempty"`
	Address     string              `bson:"address,omitempty" json:"address,omitempty"`
	City        string              `bson:"city,omitempty" json:"city,omitempty"`
	State       string              `bson:"state,omitempty" json:"state,omitempty"`
	Country     string              `bson:"country,omitempty" json:"country,omitempty"`
	Pincode     string              `bson:"pincode,omitempty" json:"pincode,omitempty"`
	IsVerified  bool                `bson:"isVerified" json:"isVerified"`
	IsActive    bool                `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CompanyInput is accepted by create and update; nil fields are left untouched.
type CompanyInput struct {
	CompanyName *string `json:"companyName" form:"companyName" validate:"omitempty,max=200"`
	DirectorCeo *string `json:"directorCeo" form:"directorCeo" validate:"omitempty,max=200"`
	ContactName *string `json:"contactName" form:"contactName" validate:"omitempty,max=200"`
	Industry    *string `json:"industry" form:"industry"`
	Email       *string `json:"email" form:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Website     *string `json:"website" form:"website" validate:"omitempty,http_url"`
	Address     *string `json:"address" form:"address"`
	City        *string `json:"city" form:"city"`
	State       *string `json:"state" form:"state"`
	Country     *string `json:"country" form:"country"`
	Pincode     *string `json:"pincode" form:"pincode"`
}

func (in CompanyInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "companyName", in.CompanyName)
	recordstore.PutString(rec, "directorCeo", in.DirectorCeo)
	recordstore.PutString(rec, "industry", in.Industry)
	recordstore.PutString(rec, "phone", in.Phone)
	recordstore.PutString(rec, "website", in.Website)
	recordstore.PutString(rec, "address", in.Address)
	recordstore.PutString(rec, "city", in.City)
	recordstore.PutString(rec, "state", in.State)
	recordstore.PutString(rec, "country", in.Country)
	recordstore.PutString(rec, "pincode", in.Pincode)

	if in.Email != nil {
		rec["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	// contactName is the older name of directorCeo.
	if v, _ := rec["directorCeo"].(string); v == "" && in.ContactName != nil {
		rec["directorCeo"] = strings.TrimSpace(*in.ContactName)
	}
	return rec
}

type VerifyInput struct {
	IsVerified *bool `json:"isVerified"`
}
