package food

import "time"

// Item is a single catalog entry exposed to the frontend.
type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch describes a partial update. A nil field keeps the stored value.
type Patch struct {
	Name        *string
	Price       *float64
	Description *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil
}

func (p Patch) applyTo(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
}

// Seed returns the starter catalog loaded when seeding is enabled.
// Identifiers are assigned by the store in slice order.
func Seed() []Item {
	return []Item{
		{Name: "Bananas", Price: 80, Description: "Fresh yellow bananas from Ecuador"},
		{Name: "Apples", Price: 120, Description: "Red Golden apples"},
		{Name: "Avocado", Price: 250, Description: "Ripe avocados from Mexico"},
		{Name: "Mango", Price: 750, Description: "Sweet mangoes from Thailand"},
		{Name: "Strawberry", Price: 450, Description: "Fresh strawberries from local greenhouses"},
		{Name: "Pomegranate", Price: 180, Description: "Juicy pomegranates from Azerbaijan"},
		{Name: "Pineapple", Price: 550, Description: "Sweet pineapple from Costa Rica"},
	}
}
