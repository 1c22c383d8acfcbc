package models

import "time"

type NewsletterSubscriber struct {
	ID          string    `json:"_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Preferences []string  `json:"preferences,omitempty"`
	Subscribed  bool      `json:"subscribed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SubscribeRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Preferences []string `json:"preferences"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type NewsletterStats struct {
	ActiveSubscribers int `json:"activeSubscribers"`
}
