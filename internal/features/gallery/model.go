package gallery

import (
	"time"

	"invest-portal/internal/common/formdata"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Image struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string              `bson:"imageUrl" json:"imageUrl"`
	AltText     string              `bson:"altText,omitempty" json:"altText,omitempty"`
	Category    string              `bson:"category,omitempty" json:"category,omitempty"`
	Order       int                 `bson:"order" json:"order"`
	IsActive    bool                `bson:"isActive" json:"isActive"`
	UploadedBy  *primitive.ObjectID `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type ImageInput struct {
	Title       *string        `json:"title" form:"title" validate:"omitempty,max=100"`
	Description *string        `json:"description" form:"description" validate:"omitempty,max=500"`
	AltText     *string        `json:"altText" form:"altText" validate:"omitempty,max=200"`
	Category    *string        `json:"category" form:"category" validate:"omitempty,max=50"`
	Order       *int           `json:"order" form:"order" validate:"omitempty,min=0"`
	IsActive    *formdata.Bool `json:"isActive" form:"isActive"`
}

func (in ImageInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "title", in.Title)
	recordstore.PutString(rec, "description", in.Description)
	recordstore.PutString(rec, "altText", in.AltText)
	recordstore.PutString(rec, "category", in.Category)
	recordstore.Put(rec, "order", in.Order)
	recordstore.Put(rec, "isActive", in.IsActive.Ptr())
	return rec
}

// StatusResult is returned by the status toggle.
type StatusResult struct {
	ID       primitive.ObjectID `json:"_id"`
	IsActive bool               `json:"isActive"`
	Message  string             `json:"message"`
}
