package models

import (
	"time"
)

// Donation statuses
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ValidReviewStatus reports whether s is a status an admin may assign.
func ValidReviewStatus(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

type Donation struct {
	ID           string    `bson:"_id" json:"id"`
	DonorName    string    `bson:"donor_name" json:"donor_name"`
	TreeQuantity int       `bson:"tree_quantity" json:"tree_quantity"`
	Amount       int       `bson:"amount" json:"amount"` // frozen at creation: quantity x price at the time
	ProofURL     string    `bson:"proof_url" json:"proof_url"`
	Status       string    `bson:"status" json:"status"` // PENDING, APPROVED, REJECTED
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
