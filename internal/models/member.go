package models

import "time"

type Member struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	PhoneNumber    string    `json:"phone_number"`
	BirthDate      time.Time `json:"birth_date"`
	MembershipType string    `json:"membership_type"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type MembershipStats struct {
	Total   int `json:"total"`
	Full    int `json:"full"`
	Partial int `json:"partial"`
}
