package policy

import (
	"time"

	"invest-portal/internal/common/formdata"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// Author is the populated createdBy user.
type Author struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
}

type Policy struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Category    string              `bson:"category" json:"category"`
	Description string              `bson:"description" json:"description"`
	Tags        []string            `bson:"tags" json:"tags"`
	PublishedOn time.Time           `bson:"publishedOn" json:"publishedOn"`
	FileSize    int64               `bson:"fileSize" json:"fileSize"`
	FileURL     string              `bson:"fileURL" json:"fileURL"`
	CreatedBy   *primitive.ObjectID `bson:"createdBy,omitempty" json:"-"`
	Author      *Author             `bson:"author,omitempty" json:"createdBy,omitempty"`
	Status      string              `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type PolicyInput struct {
	Title       *string        `json:"title" form:"title" validate:"omitempty,max=200"`
	Category    *string        `json:"category" form:"category" validate:"omitempty,oneof='Government Policy' 'Company Policy' 'Event Regulations' Standards"`
	Description *string        `json:"description" form:"description"`
	Tags        *[]string      `json:"tags" form:"-"`
	PublishedOn *formdata.Date `json:"publishedOn" form:"publishedOn"`
	Status      *string        `json:"status" form:"status" validate:"omitempty,oneof=Draft Published"`
}

func (in PolicyInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "title", in.Title)
	recordstore.PutString(rec, "category", in.Category)
	recordstore.PutString(rec, "description", in.Description)
	recordstore.PutString(rec, "status", in.Status)
	recordstore.Put(rec, "tags", in.Tags)
	if t := in.PublishedOn.TimePtr(); t != nil {
		rec["publishedOn"] = *t
	}
	return rec
}

type ListFilter struct {
	Search   string
	Status   string
	Category string
}
