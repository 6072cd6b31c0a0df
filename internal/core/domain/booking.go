package domain

import "time"

// Booking is a buyer's reservation of a product ahead of payment. It is owned
// exclusively by the buyer who created it; Paid transitions false→true exactly
// once, set by the payment cascade.
type Booking struct {
	ID            string    `json:"id" bson:"_id"`
	BuyerEmail    string    `json:"buyer_email" bson:"buyer_email"`
	ProductID     string    `json:"product_id" bson:"product_id"`
	ProductName   string    `json:"product_name" bson:"product_name"`
	Price         float64   `json:"price" bson:"price"`
	Paid          bool      `json:"paid" bson:"paid"`
	TransactionID string    `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
