package email

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmailStatus string

const (
	EmailQueued EmailStatus = "QUEUED"
	EmailSent   EmailStatus = "SENT"
	EmailFailed EmailStatus = "FAILED"
)

// Email is the delivery record kept for every outgoing message.
type Email struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From       string             `bson:"from" json:"from"`
	To         []string           `bson:"to" json:"to"`
	Subject    string             `bson:"subject" json:"subject"`
	HtmlBody   string             `bson:"htmlBody,omitempty" json:"htmlBody,omitempty"`
	Status     EmailStatus        `bson:"status" json:"status"`
	EntityType string             `bson:"entityType,omitempty" json:"entityType,omitempty"`
	EntityID   string             `bson:"entityId,omitempty" json:"entityId,omitempty"`
	ErrorMsg   string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	SentAt     *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
}

// Message is what callers hand to the service.
type Message struct {
	To         []string
	Subject    string
	HtmlBody   string
	EntityType string
	EntityID   string
}
