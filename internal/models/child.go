package models

import "time"

type Child struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Country     string    `json:"country"`
	Region      string    `json:"region,omitempty"`
	PhotoURL    string    `json:"photoUrl"`
	Story       string    `json:"story"`
	Needs       []string  `json:"needs"`
	IsSponsored bool      `json:"isSponsored"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"-"`
}
