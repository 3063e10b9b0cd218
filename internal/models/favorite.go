package models

import "time"

// Favorite bookmarks a biodata for a member. A few listing fields are
// denormalized so the favorites page renders without a join.
type Favorite struct {
	ID                string    `json:"id" bson:"_id"`
	UserEmail         string    `json:"userEmail" bson:"user_email"`
	BiodataID         int       `json:"biodataId" bson:"biodata_id"`
	Name              string    `json:"name" bson:"name,omitempty"`
	PermanentDivision string    `json:"permanentDivision" bson:"permanent_division,omitempty"`
	Occupation        string    `json:"occupation" bson:"occupation,omitempty"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
}

type AddFavoriteRequest struct {
	BiodataID int `json:"biodataId"`
}
