package domain

import "time"

// Payment is the append-only record of a confirmed payment. Appending one is
// the trigger for the sale-finalization cascade; it is never updated or
// deleted. TransactionID carries the gateway reference and is unique.
type Payment struct {
	ID            string    `json:"id" bson:"_id"`
	BookingID     string    `json:"booking_id" bson:"booking_id"`
	ProductID     string    `json:"product_id" bson:"product_id"`
	TransactionID string    `json:"transaction_id" bson:"transaction_id"`
	Amount        float64   `json:"amount" bson:"amount"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
