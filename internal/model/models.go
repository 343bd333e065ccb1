package model

import "time"

// Coordinate is an immutable latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
}

// Valid reports whether the coordinate is within the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Category is the closed set of business types a listing can belong to.
type Category string

const (
	CategoryHairBeauty   Category = "Hair & Beauty"
	CategoryHomeServices Category = "Home Services"
	CategoryFoodDrink    Category = "Food & Drink"
	CategoryRetail       Category = "Retail"
	CategoryWellness     Category = "Wellness"
	CategoryCreative     Category = "Creative"
	CategoryOther        Category = "Other"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryHairBeauty,
		CategoryHomeServices,
		CategoryFoodDrink,
		CategoryRetail,
		CategoryWellness,
		CategoryCreative,
		CategoryOther,
	}
}

// ParseCategory returns the Category matching s, or false if s is not
// in the closed set.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Status marks whether a listing is shown as active.
// Flipping to Inactive is the only removal path; listings are never hard-deleted.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Business represents a single directory listing.
// IDs are opaque. Client-generated temporary ids carry a "tmp-" prefix so
// they can never collide with server-assigned ids after reconciliation.
type Business struct {
	ID          string     `json:"id" dynamodbav:"id"`
	Name        string     `json:"name" dynamodbav:"name"`
	Category    Category   `json:"category" dynamodbav:"category"`
	Location    Coordinate `json:"location" dynamodbav:"location"`
	WhatsApp    string     `json:"whatsapp" dynamodbav:"whatsapp"`
	Phone       string     `json:"phone" dynamodbav:"phone"`
	Description string     `json:"description" dynamodbav:"description"`
	ImageURL    string     `json:"image_url" dynamodbav:"image_url"`
	Status      Status     `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"created_at"`
}

// Session identifies an authenticated user. Absence of a session means
// the user is anonymous.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
