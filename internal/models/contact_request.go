package models

import "time"

const (
	ContactRequestPending  = "pending"
	ContactRequestApproved = "approved"
)

// ContactRequest is a paid request to see a biodata owner's contact details.
// MobileNumber and ContactEmail stay empty until an admin approves.
type ContactRequest struct {
	ID              string    `json:"id" bson:"_id"`
	BiodataID       int       `json:"biodataId" bson:"biodata_id"`
	SelfEmail       string    `json:"selfEmail" bson:"self_email"`
	Name            string    `json:"name" bson:"name,omitempty"`
	Status          string    `json:"status" bson:"status"`
	PaymentIntentID string    `json:"paymentIntentId" bson:"payment_intent_id,omitempty"`
	Amount          int64     `json:"amount" bson:"amount"`
	MobileNumber    string    `json:"mobileNumber,omitempty" bson:"-"`
	ContactEmail    string    `json:"contactEmail,omitempty" bson:"-"`
	Notified        bool      `json:"-" bson:"notified"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

type CreateContactRequest struct {
	BiodataID       int    `json:"biodataId"`
	Name            string `json:"name"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (r *CreateContactRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.BiodataID <= 0 {
		errors["biodataId"] = "Biodata id is required"
	}
	if r.PaymentIntentID == "" {
		errors["paymentIntentId"] = "Payment intent id is required"
	}

	return errors
}
