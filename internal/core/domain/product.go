package domain

import "time"

// Product is a second-hand item offered for sale. The same document lives in
// two collections: the seller-owned authoritative record and a denormalized
// browsable mirror used for public category listings. A product appears in
// the mirror iff it has not been sold and has not been removed by report
// resolution.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	SellerEmail string    `json:"seller_email" bson:"seller_email"`
	Name        string    `json:"name" bson:"name"`
	CategoryID  string    `json:"category_id" bson:"category_id"`
	Price       float64   `json:"price" bson:"price"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	YearsOfUse  int       `json:"years_of_use" bson:"years_of_use"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Advertised  bool      `json:"advertised" bson:"advertised"`
	Sold        bool      `json:"sold" bson:"sold"`
	PostedAt    time.Time `json:"posted_at" bson:"posted_at"`
}
