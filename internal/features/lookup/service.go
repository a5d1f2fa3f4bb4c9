package lookup

import (
	"context"

	"invest-portal/internal/features/district"
	"invest-portal/internal/features/industry"
)

var states = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa",
	"Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala",
	"Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland",
	"Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal", "Delhi", "Jammu and Kashmir",
	"Ladakh", "Puducherry", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Lakshadweep", "Andaman and Nicobar Islands",
}

// LookupService serves the reference lists used by public forms.
type LookupService interface {
	States() []string
	Industries(ctx context.Context) ([]industry.Ref, error)
	Districts(ctx context.Context) ([]district.Ref, error)
}

type LookupServiceImpl struct {
	IndustryService industry.IndustryService
	DistrictService district.DistrictService
}

func NewLookupService(industryService industry.IndustryService, districtService district.DistrictService) LookupService {
	return &LookupServiceImpl{
		IndustryService: industryService,
		DistrictService: districtService,
	}
}

func (s *LookupServiceImpl) States() []string {
	out := make([]string, len(states))
	copy(out, states)
	return out
}

func (s *LookupServiceImpl) Industries(ctx context.Context) ([]industry.Ref, error) {
	return s.IndustryService.Refs(ctx)
}

func (s *LookupServiceImpl) Districts(ctx context.Context) ([]district.Ref, error) {
	return s.DistrictService.Refs(ctx)
}
