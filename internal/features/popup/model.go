package popup

import (
	"fmt"
	"strings"
	"time"

	"invest-portal/internal/common/formdata"
	"invest-portal/internal/common/validation"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CTA struct {
	Text    string `bson:"text" json:"text" validate:"required,max=50"`
	URL     string `bson:"url" json:"url" validate:"required,http_url"`
	Primary bool   `bson:"primary" json:"primary"`
}

// DailySchedule limits display to a clock window when Enabled.
type DailySchedule struct {
	Enabled   bool   `bson:"enabled" json:"enabled"`
	StartTime string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

type Popup struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	CTAs            []CTA              `bson:"ctas" json:"ctas"`
	Priority        int                `bson:"priority" json:"priority"`
	BackgroundType  string             `bson:"backgroundType" json:"backgroundType"`
	BackgroundColor string             `bson:"backgroundColor" json:"backgroundColor"`
	BackgroundImage string             `bson:"backgroundImage" json:"backgroundImage"`
	DisplayDuration int                `bson:"displayDuration" json:"displayDuration"`
	Closable        bool               `bson:"closable" json:"closable"`
	Enabled         bool               `bson:"enabled" json:"enabled"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
	DailySchedule   DailySchedule      `bson:"dailySchedule" json:"dailySchedule"`
	DelaySeconds    int                `bson:"delaySeconds" json:"delaySeconds"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleInput is the dailySchedule object; times may omit the leading zero.
type ScheduleInput struct {
	Enabled   *formdata.Bool `json:"enabled"`
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
}

type PopupInput struct {
	Title           *string        `json:"title" form:"title" validate:"omitempty,max=100"`
	Description     *string        `json:"description" form:"description" validate:"omitempty,max=500"`
	CTAs            *[]CTA         `json:"ctas" form:"-" validate:"omitempty,dive"`
	Priority        *int           `json:"priority" form:"priority" validate:"omitempty,min=0,max=100"`
	BackgroundType  *string        `json:"backgroundType" form:"backgroundType" validate:"omitempty,oneof=color image"`
	BackgroundColor *string        `json:"backgroundColor" form:"backgroundColor" validate:"omitempty,hexcolor6"`
	BackgroundImage *string        `json:"backgroundImage" form:"backgroundImage"`
	DisplayDuration *int           `json:"displayDuration" form:"displayDuration" validate:"omitempty,min=0,max=300"`
	DelaySeconds    *int           `json:"delaySeconds" form:"delaySeconds" validate:"omitempty,min=0,max=300"`
	Closable        *formdata.Bool `json:"closable" form:"closable"`
	Enabled         *formdata.Bool `json:"enabled" form:"enabled"`
	StartDate       *formdata.Date `json:"startDate" form:"startDate"`
	EndDate         *formdata.Date `json:"endDate" form:"endDate"`
	DailySchedule   *ScheduleInput `json:"dailySchedule" form:"-"`
}

// normalizeClock pads 9:05 to 09:05 so stored times compare as strings.
func normalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if !validation.IsHHMM(s) {
		return s
	}
	var h, m int
	fmt.Sscanf(s, "%d:%d", &h, &m)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func (in ScheduleInput) schedule() DailySchedule {
	d := DailySchedule{
		StartTime: normalizeClock(in.StartTime),
		EndTime:   normalizeClock(in.EndTime),
	}
	if p := in.Enabled.Ptr(); p != nil {
		d.Enabled = *p
	}
	return d
}

func (in PopupInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "title", in.Title)
	recordstore.PutString(rec, "description", in.Description)
	recordstore.PutString(rec, "backgroundType", in.BackgroundType)
	recordstore.PutString(rec, "backgroundColor", in.BackgroundColor)
	if in.BackgroundImage != nil && strings.TrimSpace(*in.BackgroundImage) != "" {
		rec["backgroundImage"] = strings.TrimSpace(*in.BackgroundImage)
	}
	recordstore.Put(rec, "priority", in.Priority)
	recordstore.Put(rec, "displayDuration", in.DisplayDuration)
	recordstore.Put(rec, "delaySeconds", in.DelaySeconds)
	recordstore.Put(rec, "closable", in.Closable.Ptr())
	recordstore.Put(rec, "enabled", in.Enabled.Ptr())
	if t := in.StartDate.TimePtr(); t != nil {
		rec["startDate"] = *t
	}
	if t := in.EndDate.TimePtr(); t != nil {
		rec["endDate"] = *t
	}
	if in.CTAs != nil {
		ctas := make([]any, 0, len(*in.CTAs))
		for _, c := range *in.CTAs {
			ctas = append(ctas, map[string]any{
				"text":    strings.TrimSpace(c.Text),
				"url":     strings.TrimSpace(c.URL),
				"primary": c.Primary,
			})
		}
		rec["ctas"] = ctas
	}
	if in.DailySchedule != nil {
		d := in.DailySchedule.schedule()
		rec["dailySchedule"] = map[string]any{
			"enabled":   d.Enabled,
			"startTime": d.StartTime,
			"endTime":   d.EndTime,
		}
	}
	return rec
}

type ListFilter struct {
	Enabled *bool
	Search  string
}
