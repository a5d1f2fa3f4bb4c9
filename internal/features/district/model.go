package district

import (
	"time"

	"invest-portal/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Presence struct {
	Presence bool   `bson:"presence" json:"presence"`
	Details  string `bson:"details,omitempty" json:"details,omitempty"`
}

type Availability struct {
	Available bool   `bson:"available" json:"available"`
	Details   string `bson:"details,omitempty" json:"details,omitempty"`
}

// Ref is the projection served to dropdowns.
type Ref struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	DistrictName string             `bson:"districtName" json:"districtName"`
	State        string             `bson:"state,omitempty" json:"state,omitempty"`
}

type District struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DistrictName        string             `bson:"districtName" json:"districtName"`
	State               string             `bson:"state,omitempty" json:"state,omitempty"`
	Population          float64            `bson:"population,omitempty" json:"population,omitempty"`
	AreaSize            float64            `bson:"areaSize,omitempty" json:"areaSize,omitempty"`
	Headquarters        string             `bson:"headquarters,omitempty" json:"headquarters,omitempty"`
	PostalCode          string             `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	ContactEmail        string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	WebsiteURL          string             `bson:"websiteURL,omitempty" json:"websiteURL,omitempty"`
	ContactPhone        string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	LiteracyRate        float64            `bson:"literacyRate,omitempty" json:"literacyRate,omitempty"`
	PrimaryLanguages    []string           `bson:"primaryLanguages" json:"primaryLanguages"`
	MajorIndustries     []string           `bson:"majorIndustries" json:"majorIndustries"`
	Infrastructure      string             `bson:"infrastructure,omitempty" json:"infrastructure,omitempty"`
	MidcSezPresence     Presence           `bson:"midcSezPresence" json:"midcSezPresence"`
	RailConnectivity    string             `bson:"railConnectivity" json:"railConnectivity"`
	AirportAvailability Availability       `bson:"airportAvailability" json:"airportAvailability"`
	PowerSupply         string             `bson:"powerSupply,omitempty" json:"powerSupply,omitempty"`
	WaterAvailability   string             `bson:"waterAvailability,omitempty" json:"waterAvailability,omitempty"`
	AwardsPhotos        []string           `bson:"awardsPhotos" json:"awardsPhotos"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DistrictInput is the districtData document. AwardsPhotos, when present,
// replaces the stored list before new uploads are appended.
type DistrictInput struct {
	DistrictName        *string       `json:"districtName" validate:"omitempty,max=100"`
	State               *string       `json:"state"`
	Population          *float64      `json:"population" validate:"omitempty,min=0"`
	AreaSize            *float64      `json:"areaSize" validate:"omitempty,min=0"`
	Headquarters        *string       `json:"headquarters"`
	PostalCode          *string       `json:"postalCode"`
	ContactEmail        *string       `json:"contactEmail" validate:"omitempty,email"`
	WebsiteURL          *string       `json:"websiteURL" validate:"omitempty,url"`
	ContactPhone        *string       `json:"contactPhone"`
	Description         *string       `json:"description"`
	LiteracyRate        *float64      `json:"literacyRate" validate:"omitempty,min=0,max=100"`
	PrimaryLanguages    *[]string     `json:"primaryLanguages"`
	MajorIndustries     *[]string     `json:"majorIndustries"`
	Infrastructure      *string       `json:"infrastructure"`
	MidcSezPresence     *Presence     `json:"midcSezPresence"`
	RailConnectivity    *string       `json:"railConnectivity" validate:"omitempty,oneof=Passenger Freight Both None"`
	AirportAvailability *Availability `json:"airportAvailability"`
	PowerSupply         *string       `json:"powerSupply"`
	WaterAvailability   *string       `json:"waterAvailability"`
	AwardsPhotos        *[]string     `json:"awardsPhotos"`
}

func (in DistrictInput) Fields() recordstore.Record {
	rec := recordstore.Record{}
	recordstore.PutString(rec, "districtName", in.DistrictName)
	recordstore.PutString(rec, "state", in.State)
	recordstore.Put(rec, "population", in.Population)
	recordstore.Put(rec, "areaSize", in.AreaSize)
	recordstore.PutString(rec, "headquarters", in.Headquarters)
	recordstore.PutString(rec, "postalCode", in.PostalCode)
	recordstore.PutString(rec, "contactEmail", in.ContactEmail)
	recordstore.PutString(rec, "websiteURL", in.WebsiteURL)
	recordstore.PutString(rec, "contactPhone", in.ContactPhone)
	recordstore.PutString(rec, "description", in.Description)
	recordstore.Put(rec, "literacyRate", in.LiteracyRate)
	recordstore.Put(rec, "primaryLanguages", in.PrimaryLanguages)
	recordstore.Put(rec, "majorIndustries", in.MajorIndustries)
	recordstore.PutString(rec, "infrastructure", in.Infrastructure)
	recordstore.PutString(rec, "railConnectivity", in.RailConnectivity)
	recordstore.PutString(rec, "powerSupply", in.PowerSupply)
	recordstore.PutString(rec, "waterAvailability", in.WaterAvailability)

	if p := in.MidcSezPresence; p != nil {
		rec["midcSezPresence"] = map[string]any{"presence": p.Presence, "details": p.Details}
	}
	if a := in.AirportAvailability; a != nil {
		rec["airportAvailability"] = map[string]any{"available": a.Available, "details": a.Details}
	}
	if in.AwardsPhotos != nil {
		photos := make([]any, 0, len(*in.AwardsPhotos))
		for _, p := range *in.AwardsPhotos {
			photos = append(photos, p)
		}
		rec["awardsPhotos"] = photos
	}
	return rec
}
