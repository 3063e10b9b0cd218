package models

import "time"

// SuccessStory is a married couple's testimonial shown on the home page.
type SuccessStory struct {
	ID               string    `json:"id" bson:"_id"`
	SelfBiodataID    int       `json:"selfBiodataId" bson:"self_biodata_id"`
	PartnerBiodataID int       `json:"partnerBiodataId" bson:"partner_biodata_id"`
	CoupleImage      string    `json:"coupleImage" bson:"couple_image,omitempty"`
	Review           string    `json:"review" bson:"review"`
	MarriageDate     time.Time `json:"marriageDate" bson:"marriage_date"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
}

type CreateStoryRequest struct {
	SelfBiodataID    int       `json:"selfBiodataId"`
	PartnerBiodataID int       `json:"partnerBiodataId"`
	CoupleImage      string    `json:"coupleImage"`
	Review           string    `json:"review"`
	MarriageDate     time.Time `json:"marriageDate"`
}

func (r *CreateStoryRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.SelfBiodataID <= 0 {
		errors["selfBiodataId"] = "Self biodata id is required"
	}
	if r.PartnerBiodataID <= 0 {
		errors["partnerBiodataId"] = "Partner biodata id is required"
	}
	if r.Review == "" {
		errors["review"] = "Review is required"
	}

	return errors
}
