package models

// CreatePaymentIntentRequest asks the gateway for a client-usable handle.
// Amount is in the currency's smallest unit (cents).
type CreatePaymentIntentRequest struct {
	Amount int64 `json:"amount"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// AdminStats is the dashboard summary: biodata counts by category plus the
// revenue collected from contact requests.
type AdminStats struct {
	TotalBiodata   int64 `json:"totalBiodata"`
	MaleBiodata    int64 `json:"maleBiodata"`
	FemaleBiodata  int64 `json:"femaleBiodata"`
	PremiumBiodata int64 `json:"premiumBiodata"`
	TotalRevenue   int64 `json:"totalRevenue"`
}
