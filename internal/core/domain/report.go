package domain

import "time"

// Report is a buyer's complaint about a product. Resolution (admin only)
// deletes the report and removes the product's browsable mirror; the seller's
// authoritative record is retained for audit.
type Report struct {
	ID            string    `json:"id" bson:"_id"`
	ProductID     string    `json:"product_id" bson:"product_id"`
	ReporterEmail string    `json:"reporter_email" bson:"reporter_email"`
	Reason        string    `json:"reason" bson:"reason"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
