package entity

import "time"

// Product is a catalog entry. Availability is a soft flag: unavailable
// products stay in the store but are hidden from clients.
type Product struct {
	ID          string    `json:"id" firestore:"-"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	Stock       int       `json:"stock" firestore:"stock"`
	Category    string    `json:"category" firestore:"category"`
	ImageURL    string    `json:"imageUrl" firestore:"imageUrl"`
	Available   bool      `json:"available" firestore:"available"`
	SellerID    string    `json:"sellerId" firestore:"sellerId"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	SellerID string

	// IncludeUnavailable exposes hidden products. Only staff listings
	// set this.
	IncludeUnavailable bool

	// Limit caps the page size. StartAfter is the ID of the last
	// product of the previous page.
	Limit      int
	StartAfter string
}
