package models

import "time"

// Biodata type values. The directory only ever filters on exact matches.
const (
	BiodataTypeMale   = "Male"
	BiodataTypeFemale = "Female"
)

// Biodata is a member's matrimony listing, keyed by a small sequential id.
// Descriptive fields are opaque to the directory logic; only BiodataType,
// Age and PermanentDivision participate in filtering.
type Biodata struct {
	BiodataID             int       `json:"biodataId" bson:"biodata_id"`
	BiodataType           string    `json:"biodataType" bson:"biodata_type"`
	Name                  string    `json:"name" bson:"name"`
	ContactEmail          string    `json:"contactEmail" bson:"contact_email"`
	ProfileImage          string    `json:"profileImage" bson:"profile_image,omitempty"`
	DateOfBirth           string    `json:"dateOfBirth" bson:"date_of_birth,omitempty"`
	Age                   int       `json:"age" bson:"age"`
	Height                string    `json:"height" bson:"height,omitempty"`
	Weight                string    `json:"weight" bson:"weight,omitempty"`
	Occupation            string    `json:"occupation" bson:"occupation,omitempty"`
	Race                  string    `json:"race" bson:"race,omitempty"`
	FathersName           string    `json:"fathersName" bson:"fathers_name,omitempty"`
	MothersName           string    `json:"mothersName" bson:"mothers_name,omitempty"`
	PermanentDivision     string    `json:"permanentDivision" bson:"permanent_division,omitempty"`
	PresentDivision       string    `json:"presentDivision" bson:"present_division,omitempty"`
	ExpectedPartnerAge    string    `json:"expectedPartnerAge" bson:"expected_partner_age,omitempty"`
	ExpectedPartnerHeight string    `json:"expectedPartnerHeight" bson:"expected_partner_height,omitempty"`
	ExpectedPartnerWeight string    `json:"expectedPartnerWeight" bson:"expected_partner_weight,omitempty"`
	MobileNumber          string    `json:"mobileNumber" bson:"mobile_number,omitempty"`
	CreatedAt             time.Time `json:"createdAt" bson:"created_at"`
}

// BiodataFilter holds the recognized directory filter options. Zero values
// impose no constraint; set options compose with AND. Age bounds apply only
// when both are present.
type BiodataFilter struct {
	AgeMin      *int
	AgeMax      *int
	BiodataType string
	Division    string
}

// HasAgeRange reports whether both bounds were supplied.
func (f *BiodataFilter) HasAgeRange() bool {
	return f.AgeMin != nil && f.AgeMax != nil
}

// Matches applies the filter to a single record.
func (f *BiodataFilter) Matches(b *Biodata) bool {
	if f.HasAgeRange() && (b.Age < *f.AgeMin || b.Age > *f.AgeMax) {
		return false
	}
	if f.BiodataType != "" && b.BiodataType != f.BiodataType {
		return false
	}
	if f.Division != "" && b.PermanentDivision != f.Division {
		return false
	}
	return true
}

// PremiumBiodata is the reduced projection blended into every directory page:
// premium accounts left-joined to their biodata. Fields stay zero-valued when
// the account has no biodata yet.
type PremiumBiodata struct {
	Role         string `json:"role" bson:"role"`
	BiodataID    int    `json:"biodataId" bson:"biodata_id,omitempty"`
	BiodataType  string `json:"biodataType" bson:"biodata_type,omitempty"`
	ProfileImage string `json:"profileImage" bson:"profile_image,omitempty"`
	Division     string `json:"permanentDivision" bson:"permanent_division,omitempty"`
	Occupation   string `json:"occupation" bson:"occupation,omitempty"`
	Email        string `json:"email" bson:"email"`
	Age          int    `json:"age" bson:"age,omitempty"`
}

// DirectoryPage is the result of the filtered, paginated listing. The premium
// slice is paginated with the same window but never filtered by criteria.
type DirectoryPage struct {
	Items        []*Biodata        `json:"biodatas"`
	PremiumItems []*PremiumBiodata `json:"premiumBiodatas"`
	TotalCount   int64             `json:"totalCount"`
	TotalPages   int               `json:"totalPages"`
	CurrentPage  int               `json:"currentPage"`
}

// Pagination defaults: six cards per page.
const (
	DefaultPage     = 1
	DefaultPageSize = 6
)

type SubmitBiodataRequest struct {
	BiodataType           string `json:"biodataType"`
	Name                  string `json:"name"`
	ContactEmail          string `json:"contactEmail"`
	ProfileImage          string `json:"profileImage"`
	DateOfBirth           string `json:"dateOfBirth"`
	Age                   int    `json:"age"`
	Height                string `json:"height"`
	Weight                string `json:"weight"`
	Occupation            string `json:"occupation"`
	Race                  string `json:"race"`
	FathersName           string `json:"fathersName"`
	MothersName           string `json:"mothersName"`
	PermanentDivision     string `json:"permanentDivision"`
	PresentDivision       string `json:"presentDivision"`
	ExpectedPartnerAge    string `json:"expectedPartnerAge"`
	ExpectedPartnerHeight string `json:"expectedPartnerHeight"`
	ExpectedPartnerWeight string `json:"expectedPartnerWeight"`
	MobileNumber          string `json:"mobileNumber"`
}

func (r *SubmitBiodataRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.ContactEmail == "" {
		errors["contactEmail"] = "Contact email is required"
	}
	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.BiodataType != BiodataTypeMale && r.BiodataType != BiodataTypeFemale {
		errors["biodataType"] = "Biodata type must be Male or Female"
	}
	if r.Age <= 0 {
		errors["age"] = "Age must be a positive number"
	}

	return errors
}

// SubmitResult is the outcome of a biodata submission. A duplicate contact
// email is reported as AlreadyExists rather than an error; the HTTP layer
// renders it as the historical {biodataId: null} sentinel.
type SubmitResult struct {
	Inserted  bool
	BiodataID int
}
