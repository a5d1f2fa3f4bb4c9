package attachment

const (
	CollectionCompanies  = "companies"
	CollectionStartups   = "startups"
	CollectionDistricts  = "districts"
	CollectionIndustries = "industries"
	CollectionMembers    = "members"
	CollectionPolicies   = "policies"
	CollectionPopups     = "popups"
	CollectionGallery    = "galleries"
)

var (
	imageFilter5MB    = Filter{Extensions: ImageTypes, MaxBytes: 5 * MB}
	industryImages    = Filter{Extensions: WebImageTypes, MaxBytes: 10 * MB}
	industryDocuments = Filter{Extensions: DocumentTypes, MaxBytes: 10 * MB}
)

// Schemas returns the attachment schema of every entity that stores files.
func Schemas() []Schema {
	return []Schema{
		{
			Collection: CollectionCompanies,
			Category:   "companies",
			Entity:     "Company",
			Required:   []string{"companyName", "directorCeo", "email", "phone"},
			Fields: []Field{
				{Name: "logo", Kind: Single, Filter: imageFilter5MB},
				{Name: "banner", Kind: Single, Filter: imageFilter5MB},
			},
		},
		{
			Collection: CollectionStartups,
			Category:   "startups",
			Entity:     "Startup",
			Required:   []string{"startupName", "founderName", "description", "industry", "stage", "email", "phone"},
			Fields: []Field{
				{Name: "logo", Kind: Single, Required: true,
					Filter: Filter{Extensions: []string{".jpeg", ".jpg", ".png", ".pdf"}, MaxBytes: 5 * MB}},
				{Name: "pitchDeck", Kind: Single,
					Filter: Filter{Extensions: []string{".jpeg", ".jpg", ".png", ".pdf"}, MaxBytes: 5 * MB}},
			},
		},
		{
			Collection: CollectionDistricts,
			Category:   "awardsPhotos",
			Entity:     "District",
			Required:   []string{"districtName"},
			Fields: []Field{
				{Name: "awardsPhotos", Kind: List, MaxCount: 10,
					Filter: Filter{Extensions: []string{".jpeg", ".jpg", ".png"}, MaxBytes: 5 * MB}},
			},
		},
		{
			Collection: CollectionIndustries,
			Category:   "industries",
			Entity:     "Industry",
			Required:   []string{"name", "description", "overview"},
			Fields: []Field{
				{Name: "logo", Kind: Single, Filter: industryImages},
				{Name: "coverImage", Kind: Single, Filter: industryImages},
				{Name: "gallery", Kind: List, MaxCount: 10, Filter: industryImages},
				{Name: "leadership", FormField: "leadershipPhotos", Kind: Nested, Item: "photo", MaxCount: 10, Filter: industryImages},
				{Name: "pressReleases", FormField: "pressReleasesPdfs", Kind: Nested, Item: "pdf", MaxCount: 20, Filter: industryDocuments},
				{Name: "mediaCoverage", FormField: "mediaCoverageImages", Kind: Nested, Item: "image", MaxCount: 20, Filter: industryImages},
				{Name: "governmentPapers", FormField: "governmentPapersFiles", Kind: Nested, Item: "pdfOrDocument", MaxCount: 20, Filter: industryDocuments},
			},
		},
		{
			Collection: CollectionMembers,
			Category:   "members",
			Entity:     "Member",
			Required:   []string{"fullName"},
			Fields: []Field{
				{Name: "profileImage", Kind: Single, Filter: imageFilter5MB},
			},
		},
		{
			Collection: CollectionPolicies,
			Category:   "policies",
			Entity:     "Policy",
			Required:   []string{"title", "description", "category"},
			Fields: []Field{
				{Name: "fileURL", FormField: "documentFile", Kind: Single, Required: true, SizeField: "fileSize",
					Filter: Filter{Extensions: []string{".pdf", ".doc", ".docx", ".txt"}, MaxBytes: 10 * MB}},
			},
		},
		{
			Collection: CollectionPopups,
			Category:   "popups",
			Entity:     "Popup",
			Required:   []string{"title"},
			Fields: []Field{
				{Name: "backgroundImage", Kind: Single, Filter: imageFilter5MB},
			},
		},
		{
			Collection: CollectionGallery,
			Category:   "gallery",
			Entity:     "Gallery image",
			Required:   []string{"title"},
			Fields: []Field{
				{Name: "imageUrl", FormField: "image", Kind: Single, Required: true, Filter: imageFilter5MB},
			},
		},
	}
}
