package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sweet is an inventory item in the `sweets` collection.
//
// Invariants: Price >= 0 and Quantity >= 0 at all times; Sold only grows, and
// only through a successful purchase. Image is always a plain string ("" when
// the item has no picture) so API consumers get a stable shape.
type Sweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Category  string             `bson:"category"      json:"category"`
	Price     float64            `bson:"price"         json:"price"`
	Quantity  int                `bson:"quantity"      json:"quantity"`
	Sold      int                `bson:"sold"          json:"sold"`
	Image     string             `bson:"image"         json:"image"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// Revenue is one row of the revenue report: price × sold for a single sweet,
// computed at request time and never stored.
type Revenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}
