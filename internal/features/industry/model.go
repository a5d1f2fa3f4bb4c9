package industry

import (
	"strings"
	"time"

	"invest-portal/internal/common/formdata"
	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Leader struct {
	Role        string `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=Chair Co-Chair"`
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Photo       string `bson:"photo,omitempty" json:"photo,omitempty"`
}

type PressRelease struct {
	Title           string     `bson:"title,omitempty" json:"title,omitempty"`
	NewsArticleLink string     `bson:"newsArticleLink,omitempty" json:"newsArticleLink,omitempty"`
	Pdf             string     `bson:"pdf,omitempty" json:"pdf,omitempty"`
	Date            *time.Time `bson:"date,omitempty" json:"date,omitempty"`
}

type MediaCoverage struct {
	Title      string `bson:"title,omitempty" json:"title,omitempty"`
	Image      string `bson:"image,omitempty" json:"image,omitempty"`
	SourceLink string `bson:"sourceLink,omitempty" json:"sourceLink,omitempty"`
}

type GovernmentPaper struct {
	Title         string `bson:"title,omitempty" json:"title,omitempty"`
	PdfOrDocument string `bson:"pdfOrDocument,omitempty" json:"pdfOrDocument,omitempty"`
	Description   string `bson:"description,omitempty" json:"description,omitempty"`
}

type Industry struct {
	ID                         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                       string             `bson:"name" json:"name"`
	Description                string             `bson:"description" json:"description"`
	Overview                   string             `bson:"overview" json:"overview"`
	Category                   string             `bson:"category,omitempty" json:"category,omitempty"`
	InvestmentOpportunities    string             `bson:"investmentOpportunities,omitempty" json:"investmentOpportunities,omitempty"`
	InfrastructureRequirements string             `bson:"infrastructureRequirements,omitempty" json:"infrastructureRequirements,omitempty"`
	GovernmentIncentives       string             `bson:"governmentIncentives,omitempty" json:"governmentIncentives,omitempty"`
	GrowthPotential            string             `bson:"growthPotential,omitempty" json:"growthPotential,omitempty"`
	Leadership                 []Leader           `bson:"leadership" json:"leadership"`
	PressReleases              []PressRelease     `bson:"pressReleases" json:"pressReleases"`
	MediaCoverage              []MediaCoverage    `bson:"mediaCoverage" json:"mediaCoverage"`
	GovernmentPapers           []GovernmentPaper  `bson:"governmentPapers" json:"governmentPapers"`
	Logo                       string             `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImage                 string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Gallery                    []string           `bson:"gallery" json:"gallery"`
	Status                     string             `bson:"status" json:"status"`
	CreatedAt                  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Ref is the id/name pair used by dropdowns.
type Ref struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// PressReleaseInput accepts the date as any layout formdata.ParseTime knows.
type PressReleaseInput struct {
	Title           string         `json:"title"`
	NewsArticleLink string         `json:"newsArticleLink" validate:"omitempty,url"`
	Pdf             string         `json:"pdf"`
	Date            *formdata.Date `json:"date"`
}

// IndustryInput is sent as JSON, or as multipart where the nested lists and
// gallery arrive as JSON-encoded form values.
type IndustryInput struct {
	Name                       *string              `json:"name" form:"name" validate:"omitempty,max=200"`
	Description                *string              `json:"description" form:"description"`
	Overview                   *string              `json:"overview" form:"overview"`
	Category                   *string              `json:"category" form:"category"`
	InvestmentOpportunities    *string              `json:"investmentOpportunities" form:"investmentOpportunities"`
	InfrastructureRequirements *string              `json:"infrastructureRequirements" form:"infrastructureRequirements"`
	GovernmentIncentives       *string              `json:"governmentIncentives" form:"governmentIncentives"`
	GrowthPotential            *string              `json:"growthPotential" form:"growthPotential"`
	Status                     *string              `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	Leadership                 *[]Leader            `json:"leadership" form:"-" validate:"omitempty,dive"`
	PressReleases              *[]PressReleaseInput `json:"pressReleases" form:"-" validate:"omitempty,dive"`
	MediaCoverage              *[]MediaCoverage     `json:"mediaCoverage" form:"-"`
	GovernmentPapers           *[]GovernmentPaper   `json:"governmentPapers" form:"-"`
	Gallery                    *[]string            `json:"gallery" form:"-"`
}

func (in IndustryInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "name", in.Name)
	recordstore.PutString(rec, "description", in.Description)
	recordstore.PutString(rec, "overview", in.Overview)
	recordstore.PutString(rec, "category", in.Category)
	recordstore.PutString(rec, "investmentOpportunities", in.InvestmentOpportunities)
	recordstore.PutString(rec, "infrastructureRequirements", in.InfrastructureRequirements)
	recordstore.PutString(rec, "governmentIncentives", in.GovernmentIncentives)
	recordstore.PutString(rec, "growthPotential", in.GrowthPotential)
	recordstore.PutString(rec, "status", in.Status)
	recordstore.Put(rec, "gallery", in.Gallery)

	if in.Leadership != nil {
		items := make([]any, 0, len(*in.Leadership))
		for _, l := range *in.Leadership {
			items = append(items, map[string]any{
				"role":        strings.TrimSpace(l.Role),
				"name":        strings.TrimSpace(l.Name),
				"designation": strings.TrimSpace(l.Designation),
				"photo":       strings.TrimSpace(l.Photo),
			})
		}
		rec["leadership"] = items
	}
	if in.PressReleases != nil {
		items := make([]any, 0, len(*in.PressReleases))
		for _, p := range *in.PressReleases {
			item := map[string]any{"title": strings.TrimSpace(p.Title), "newsArticleLink": strings.TrimSpace(p.NewsArticleLink), "pdf": strings.TrimSpace(p.Pdf)}
			if t := p.Date.TimePtr(); t != nil {
				item["date"] = *t
			}
			items = append(items, item)
		}
		rec["pressReleases"] = items
	}
	if in.MediaCoverage != nil {
		items := make([]any, 0, len(*in.MediaCoverage))
		for _, m := range *in.MediaCoverage {
			items = append(items, map[string]any{"title": strings.TrimSpace(m.Title), "image": strings.TrimSpace(m.Image), "sourceLink": strings.TrimSpace(m.SourceLink)})
		}
		rec["mediaCoverage"] = items
	}
	if in.GovernmentPapers != nil {
		items := make([]any, 0, len(*in.GovernmentPapers))
		for _, g := range *in.GovernmentPapers {
			items = append(items, map[string]any{"title": strings.TrimSpace(g.Title), "pdfOrDocument": strings.TrimSpace(g.PdfOrDocument), "description": strings.TrimSpace(g.Description)})
		}
		rec["governmentPapers"] = items
	}
	return rec
}

// Categories groups the sector names offered by the admin form.
var Categories = map[string][]string{
	"Core & Traditional": {
		"Agriculture & Allied Industries",
		"Food Processing & Agro-based Industries",
		"Dairy & Animal Husbandry",
		"Bamboo & Forest-based Industries",
		"Minerals & Mining",
		"Energy & Renewable Energy",
		"Steel & Allied Industries / PEB",
		"Logistics & Warehousing",
	},
	"Emerging & Strategic": {
		"IT & ITES",
		"Healthcare & Pharmaceuticals",
		"Automobile & EV Components",
		"Defence & Aerospace",
		"Plastics, Printing & Packaging",
		"Startups & Innovation",
	},
	"Support & Allied": {
		"Textiles & Readymade Garments",
		"Furniture & Handicrafts",
		"Paper & Allied Industries",
		"Real Estate & Infrastructure",
		"Tourism & Hospitality",
		"Retail, Food & Beverage, Entertainment",
		"Education & Skill Development",
		"AgriTech & Smart Farming",
		"Bioenergy & Waste Management",
	},
}
