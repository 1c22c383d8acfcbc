package models

import "time"

// Sponsorship is immutable after creation, like Donation. ChildID is an
// optional loose link to a catalog child.
type Sponsorship struct {
	ID            string    `json:"_id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	MonthlyAmount float64   `json:"monthlyAmount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	ChildID       *string   `json:"childId,omitempty"`
	IsCompleted   bool      `json:"isCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreateSponsorshipRequest struct {
	FirstName     string  `json:"firstName" validate:"required"`
	LastName      string  `json:"lastName" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone"`
	MonthlyAmount float64 `json:"monthlyAmount" validate:"required,gt=0"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	ChildID       string  `json:"childId"`
}

type SponsorshipStats struct {
	TotalSponsorships   int     `json:"totalSponsorships"`
	TotalMonthlyAmount  float64 `json:"totalMonthlyAmount"`
	SponsoredChildCount int     `json:"sponsoredChildCount"`
}
