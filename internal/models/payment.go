package models

import "time"

type Payment struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	OrderRef  string    `json:"order_ref"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
