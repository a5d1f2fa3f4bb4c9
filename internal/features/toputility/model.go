package toputility

import (
	"strings"
	"time"

	"invest-portal/internal/common/formdata"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SocialLinks struct {
	Facebook  string `bson:"facebook" json:"facebook"`
	Twitter   string `bson:"twitter" json:"twitter"`
	Linkedin  string `bson:"linkedin" json:"linkedin"`
	Instagram string `bson:"instagram" json:"instagram"`
	Youtube   string `bson:"youtube" json:"youtube"`
}

// Config drives the countdown and contact strip shown above the site header.
type Config struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CountdownTitle string             `bson:"countdownTitle" json:"countdownTitle"`
	TargetDate     time.Time          `bson:"targetDate" json:"targetDate"`
	Phone          string             `bson:"phone" json:"phone"`
	Email          string             `bson:"email" json:"email"`
	SocialLinks    SocialLinks        `bson:"socialLinks" json:"socialLinks"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func DefaultConfig(now time.Time) *Config {
	return &Config{
		CountdownTitle: "Event Countdown",
		TargetDate:     now.AddDate(1, 0, 0),
		Phone:          "+91-1234567890",
		Email:          "info@example.com",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type ConfigInput struct {
	CountdownTitle *string        `json:"countdownTitle"`
	TargetDate     *formdata.Date `json:"targetDate"`
	Phone          *string        `json:"phone"`
	Email          *string        `json:"email" validate:"omitempty,email"`
	SocialLinks    *SocialLinks   `json:"socialLinks"`
}

// Apply copies the supplied fields onto cfg.
func (in ConfigInput) Apply(cfg *Config) {
	if in.CountdownTitle != nil {
		cfg.CountdownTitle = strings.TrimSpace(*in.CountdownTitle)
	}
	if t := in.TargetDate.TimePtr(); t != nil {
		cfg.TargetDate = *t
	}
	if in.Phone != nil {
		cfg.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		cfg.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.SocialLinks != nil {
		s := *in.SocialLinks
		cfg.SocialLinks = SocialLinks{
			Facebook:  strings.TrimSpace(s.Facebook),
			Twitter:   strings.TrimSpace(s.Twitter),
			Linkedin:  strings.TrimSpace(s.Linkedin),
			Instagram: strings.TrimSpace(s.Instagram),
			Youtube:   strings.TrimSpace(s.Youtube),
		}
	}
}

type Announcement struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"`
	URL             string             `bson:"url,omitempty" json:"url,omitempty"`
	BackgroundColor string             `bson:"backgroundColor" json:"backgroundColor"`
	TextColor       string             `bson:"textColor" json:"textColor"`
	AnimationSpeed  string             `bson:"animationSpeed" json:"animationSpeed"`
	Order           int                `bson:"order" json:"order"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type AnnouncementInput struct {
	Title           *string `json:"title" validate:"omitempty,max=100"`
	Content         *string `json:"content" validate:"omitempty,max=500"`
	URL             *string `json:"url" validate:"omitempty,http_url"`
	BackgroundColor *string `json:"backgroundColor" validate:"omitempty,hexcolor6"`
	TextColor       *string `json:"textColor" validate:"omitempty,hexcolor6"`
	AnimationSpeed  *string `json:"animationSpeed" validate:"omitempty,oneof=slow normal fast"`
	Order           *int    `json:"order" validate:"omitempty,min=0"`
	IsActive        *bool   `json:"isActive"`
}

// Set returns the $set document for the supplied fields.
func (in AnnouncementInput) Set() bson.M {
	set := bson.M{}
	trimmed := map[string]*string{
		"title":           in.Title,
		"content":         in.Content,
		"url":             in.URL,
		"backgroundColor": in.BackgroundColor,
		"textColor":       in.TextColor,
		"animationSpeed":  in.AnimationSpeed,
	}
	for k, v := range trimmed {
		if v != nil {
			set[k] = strings.TrimSpace(*v)
		}
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	return set
}

// Announcement builds a new announcement with defaults for unset fields.
func (in AnnouncementInput) Announcement(now time.Time) *Announcement {
	a := &Announcement{
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		AnimationSpeed:  "normal",
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	set := in.Set()
	if v, ok := set["title"].(string); ok {
		a.Title = v
	}
	if v, ok := set["content"].(string); ok {
		a.Content = v
	}
	if v, ok := set["url"].(string); ok {
		a.URL = v
	}
	if v, ok := set["backgroundColor"].(string); ok && v != "" {
		a.BackgroundColor = v
	}
	if v, ok := set["textColor"].(string); ok && v != "" {
		a.TextColor = v
	}
	if v, ok := set["animationSpeed"].(string); ok && v != "" {
		a.AnimationSpeed = v
	}
	if in.Order != nil {
		a.Order = *in.Order
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	return a
}

type ReorderItem struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

type ReorderInput struct {
	Announcements []ReorderItem `json:"announcements" validate:"required,min=1,dive"`
}
