package models

import "time"

type DonationType string

const (
	DonationTypeOneTime DonationType = "one-time"
	DonationTypeMonthly DonationType = "monthly"
	DonationTypeItem    DonationType = "item"
)

type DonationCategory string

const (
	DonationCategoryGeneral  DonationCategory = "general"
	DonationCategoryDisaster DonationCategory = "disaster"
	DonationCategorySponsor  DonationCategory = "sponsor"
)

// Donation is immutable after creation; there are no update or delete
// operations on it.
type Donation struct {
	ID              string           `json:"_id"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone,omitempty"`
	Amount          float64          `json:"amount"`
	Currency        string           `json:"currency"`
	Type            DonationType     `json:"type"`
	Category        DonationCategory `json:"category"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	ItemType        string           `json:"itemType,omitempty"`
	ItemDescription string           `json:"itemDescription,omitempty"`
	IsCompleted     bool             `json:"isCompleted"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type CreateDonationRequest struct {
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Type            string  `json:"type" validate:"required,oneof=one-time monthly item"`
	Category        string  `json:"category" validate:"required,oneof=general disaster sponsor"`
	PaymentMethod   string  `json:"paymentMethod"`
	ItemType        string  `json:"itemType"`
	ItemDescription string  `json:"itemDescription"`
}

// ImpactStats is a display-only estimate for the frontend, not exact
// accounting.
type ImpactStats struct {
	ChildSponsorship struct {
		TotalSponsored string `json:"totalSponsored"`
		USSponsored    string `json:"usSponsored"`
	} `json:"childSponsorship"`
	DisasterRelief struct {
		USEmergencies        string `json:"usEmergencies"`
		WorldwideEmergencies string `json:"worldwideEmergencies"`
	} `json:"disasterRelief"`
	TotalDonations struct {
		Amount  string `json:"amount"`
		Count   int    `json:"count"`
		Average string `json:"average"`
	} `json:"totalDonations"`
}
