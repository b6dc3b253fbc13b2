package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is catalog category
type Category struct {
	ID   string
	Name string
	Slug string
}

// Product is catalog product, the photo is served elsewhere
type Product struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Quantity    int
	Shipping    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
