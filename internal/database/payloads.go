package database

import "time"

// JSONB column types. pgx encodes and decodes these through encoding/json.

// Address is a postal address inside CustomerInfo.
type Address struct {
	Address string `json:"address" validate:"required,min=5"`
	City    string `json:"city" validate:"required,min=2"`
	State   string `json:"state" validate:"required,min=2"`
	Zip     string `json:"zip" validate:"required,min=5"`
	Country string `json:"country" validate:"required,min=2"`
}

// CustomerInfo is the contact and shipping block captured at checkout.
type CustomerInfo struct {
	Name            string   `json:"name" validate:"omitempty,max=200"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"required,min=10"`
	ShippingAddress Address  `json:"shipping_address"`
	BillingAddress  *Address `json:"billing_address,omitempty" validate:"omitempty"`
}

// Specifications is a free label/value map shown on product detail pages.
type Specifications map[string]string

// Components maps a component name to the quantity an assembly needs.
type Components map[string]int32

// DeliveryItem is one line of a delivery manifest.
type DeliveryItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int32  `json:"quantity" validate:"gt=0"`
}

// TrackingInfo holds carrier details and the in-transit / delivered stamps.
type TrackingInfo struct {
	Carrier        string     `json:"carrier,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	Location       string     `json:"location,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}
